// Package otc provides types, interfaces, and helpers for working with the
// Open To Close transaction-management API.
//
// # Overview
//
// The otc package defines the dynamic Record type, the error taxonomy, the
// response-envelope normalizers, and the interfaces for resource-oriented
// clients (e.g. PropertiesClient, ResourceClient). A concrete implementation
// is provided by the otcclient package, which wires configuration, credential
// resolution, and transport. Most consumers should import otcclient to
// construct a client and then interact with the interfaces exposed here.
//
// Getting a client
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
//	  cli, err := otcclient.New(&otc.Config{APIKey: "token"})
//	  if err != nil { log.Fatal(err) }
//
//	  contacts, err := cli.Contacts().List(ctx, map[string]interface{}{"limit": 50})
//	  if err != nil { log.Fatal(err) }
//	  _ = contacts
//	}
//
// # Errors
//
// Every failure is an *Error carrying a Kind, the HTTP status code when a
// response was received, and the decoded response payload. Helpers such as
// IsNotFound, IsRateLimit, and IsValidation make it easy to branch on common
// cases. The library never retries; every failure is surfaced immediately.
//
// # Property field mapping
//
// The properties resource does not accept caller keys directly: create
// payloads are translated into the provider's nested {id, key, value} schema
// using FieldMap. See DefaultFieldMap and PropertiesClient.Create.
package otc
