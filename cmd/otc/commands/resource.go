package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/opentoclose/pkg/otc"
)

// resourceCommandSpec drives the shared list/get/create/update/delete command
// set for the top-level resources.
type resourceCommandSpec struct {
	use     string
	aliases []string
	short   string
	long    string
	columns []string
	client  func(otc.Client) otc.ResourceClient
}

func newResourceCommand(spec resourceCommandSpec) *cobra.Command {
	cmd := &cobra.Command{
		Use:     spec.use,
		Aliases: spec.aliases,
		Short:   spec.short,
		Long:    spec.long,
	}

	cmd.AddCommand(newResourceListCommand(spec))
	cmd.AddCommand(newResourceGetCommand(spec))
	cmd.AddCommand(newResourceCreateCommand(spec))
	cmd.AddCommand(newResourceUpdateCommand(spec))
	cmd.AddCommand(newResourceDeleteCommand(spec))

	return cmd
}

func newResourceListCommand(spec resourceCommandSpec) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + spec.use,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			records, err := spec.client(client).List(context.Background(), listParamsFromFlags(cmd))
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", spec.use, err)
			}

			return OutputRecords(records, spec.columns)
		},
	}

	addListFlags(cmd)

	return cmd
}

func newResourceGetCommand(spec resourceCommandSpec) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Get one of " + spec.use + " by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			record, err := spec.client(client).Retrieve(context.Background(), id)
			if err != nil {
				return fmt.Errorf("failed to get %s %d: %w", spec.use, id, err)
			}

			return OutputRecord(record)
		},
	}
}

func newResourceCreateCommand(spec resourceCommandSpec) *cobra.Command {
	return &cobra.Command{
		Use:   "create key=value ...",
		Short: "Create one of " + spec.use,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := ParseFieldArgs(args)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			record, err := spec.client(client).Create(context.Background(), data)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", spec.use, err)
			}

			return OutputRecord(record)
		},
	}
}

func newResourceUpdateCommand(spec resourceCommandSpec) *cobra.Command {
	return &cobra.Command{
		Use:   "update ID key=value ...",
		Short: "Update one of " + spec.use,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}

			data, err := ParseFieldArgs(args[1:])
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			record, err := spec.client(client).Update(context.Background(), id, data)
			if err != nil {
				return fmt.Errorf("failed to update %s %d: %w", spec.use, id, err)
			}

			return OutputRecord(record)
		},
	}
}

func newResourceDeleteCommand(spec resourceCommandSpec) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete one of " + spec.use,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			if err := spec.client(client).Delete(context.Background(), id); err != nil {
				return fmt.Errorf("failed to delete %s %d: %w", spec.use, id, err)
			}

			fmt.Printf("Deleted %s %d\n", spec.use, id)

			return nil
		},
	}
}

// NewContactsCommand creates the contacts command group.
func NewContactsCommand() *cobra.Command {
	return newResourceCommand(resourceCommandSpec{
		use:     "contacts",
		aliases: []string{"contact"},
		short:   "Manage contacts",
		long:    "List, create, update, and delete contacts",
		columns: []string{"id", "first_name", "last_name", "email", "phone"},
		client:  func(c otc.Client) otc.ResourceClient { return c.Contacts() },
	})
}

// NewAgentsCommand creates the agents command group.
func NewAgentsCommand() *cobra.Command {
	return newResourceCommand(resourceCommandSpec{
		use:     "agents",
		aliases: []string{"agent"},
		short:   "Manage agents",
		long:    "List, create, update, and delete agents",
		columns: []string{"id", "first_name", "last_name", "email"},
		client:  func(c otc.Client) otc.ResourceClient { return c.Agents() },
	})
}

// NewTagsCommand creates the tags command group.
func NewTagsCommand() *cobra.Command {
	return newResourceCommand(resourceCommandSpec{
		use:     "tags",
		aliases: []string{"tag"},
		short:   "Manage tags",
		long:    "List, create, update, and delete tags",
		columns: []string{"id", "name", "color"},
		client:  func(c otc.Client) otc.ResourceClient { return c.Tags() },
	})
}

// NewTeamsCommand creates the teams command group.
func NewTeamsCommand() *cobra.Command {
	return newResourceCommand(resourceCommandSpec{
		use:     "teams",
		aliases: []string{"team"},
		short:   "Manage teams",
		long:    "List, create, update, and delete teams",
		columns: []string{"id", "name"},
		client:  func(c otc.Client) otc.ResourceClient { return c.Teams() },
	})
}

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	return newResourceCommand(resourceCommandSpec{
		use:     "users",
		aliases: []string{"user"},
		short:   "Manage users",
		long:    "List, create, update, and delete users",
		columns: []string{"id", "name", "email"},
		client:  func(c otc.Client) otc.ResourceClient { return c.Users() },
	})
}
