// Package otcclient provides the primary entry point for constructing an
// Open To Close API client that implements the otc.Client interface.
//
// It layers configuration resolution and the HTTP transport on top of the
// resource interfaces and types defined in the otc package. Most applications
// should import otcclient to build a client, then use the returned otc.Client
// to access resource-specific clients, for example Properties(), Contacts(),
// Teams(), etc.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/opentoclose/pkg/otc"
//	  "github.com/fivetwenty-io/opentoclose/pkg/otcclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Minimal: the key comes from OPEN_TO_CLOSE_API_KEY.
//	  cli, err := otcclient.New(nil)
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with an explicit key and options:
//	  cli, err = otcclient.New(&otc.Config{
//	    APIKey: "token",
//	    Debug:  true,
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Use resource clients via the otc.Client interface
//	  contacts, err := cli.Contacts().List(ctx, map[string]interface{}{"limit": 50})
//	  if err != nil { log.Fatal(err) }
//	  _ = contacts
//	}
//
// Property creation accepts a bare title string or a human-keyed map; the
// client translates either into the provider's field-id schema:
//
//	record, err := cli.Properties().Create(ctx, "123 Main Street")
package otcclient
