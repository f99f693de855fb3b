package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/opentoclose/pkg/otc"
)

// NewPropertiesCommand creates the properties command group.
func NewPropertiesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "properties",
		Aliases: []string{"property", "props"},
		Short:   "Manage properties",
		Long:    "List, create, update, and delete properties and their notes, tasks, and documents",
	}

	cmd.AddCommand(newPropertiesListCommand())
	cmd.AddCommand(newPropertiesGetCommand())
	cmd.AddCommand(newPropertiesCreateCommand())
	cmd.AddCommand(newPropertiesUpdateCommand())
	cmd.AddCommand(newPropertiesDeleteCommand())
	cmd.AddCommand(newPropertySubResourceCommand("notes", "Manage property notes",
		func(c otc.Client) otc.SubResourceClient { return c.PropertyNotes() }, []string{"id", "content"}))
	cmd.AddCommand(newPropertySubResourceCommand("tasks", "Manage property tasks",
		func(c otc.Client) otc.SubResourceClient { return c.PropertyTasks() }, []string{"id", "title", "completed"}))
	cmd.AddCommand(newPropertySubResourceCommand("emails", "Manage property emails",
		func(c otc.Client) otc.SubResourceClient { return c.PropertyEmails() }, []string{"id", "subject"}))
	cmd.AddCommand(newPropertySubResourceCommand("contacts", "Manage property contacts",
		func(c otc.Client) otc.SubResourceClient { return c.PropertyContacts() }, []string{"id", "contact_id", "role"}))
	cmd.AddCommand(newDocumentsCommand())
	cmd.AddCommand(newFieldsCommand())

	return cmd
}

func newPropertiesListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			records, err := client.Properties().List(context.Background(), listParamsFromFlags(cmd))
			if err != nil {
				return fmt.Errorf("failed to list properties: %w", err)
			}

			return OutputRecords(records, []string{"id", "contract_title", "contract_status"})
		},
	}

	addListFlags(cmd)

	return cmd
}

func newPropertiesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Get a property by id",
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

			record, err := client.Properties().Retrieve(context.Background(), id)
			if err != nil {
				return fmt.Errorf("failed to get property %d: %w", id, err)
			}

			return OutputRecord(record)
		},
	}
}

func newPropertiesCreateCommand() *cobra.Command {
	var (
		clientType     string
		status         string
		purchaseAmount float64
		teamMemberID   int
	)

	cmd := &cobra.Command{
		Use:   "create TITLE",
		Short: "Create a property",
		Long: `Create a property from a title and optional fields. Human field names are
translated into the provider's field-id schema automatically.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := map[string]interface{}{
				otc.FieldTitle: args[0],
			}

			if cmd.Flags().Changed("client-type") {
				input[otc.FieldClientType] = clientType
			}

			if cmd.Flags().Changed("status") {
				input[otc.FieldStatus] = status
			}

			if cmd.Flags().Changed("purchase-amount") {
				input[otc.FieldPurchaseAmount] = purchaseAmount
			}

			if cmd.Flags().Changed("team-member") {
				input["team_member_id"] = teamMemberID
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			record, err := client.Properties().Create(context.Background(), input)
			if err != nil {
				return fmt.Errorf("failed to create property: %w", err)
			}

			return OutputRecord(record)
		},
	}

	cmd.Flags().StringVar(&clientType, "client-type", "", "client type (Buyer, Seller, Dual)")
	cmd.Flags().StringVar(&status, "status", "", "contract status")
	cmd.Flags().Float64Var(&purchaseAmount, "purchase-amount", 0, "purchase amount")
	cmd.Flags().IntVar(&teamMemberID, "team-member", 0, "team member id")

	return cmd
}

func newPropertiesUpdateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "update ID key=value ...",
		Short: "Update a property",
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

			record, err := client.Properties().Update(context.Background(), id, data)
			if err != nil {
				return fmt.Errorf("failed to update property %d: %w", id, err)
			}

			return OutputRecord(record)
		},
	}
}

func newPropertiesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a property",
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

			if err := client.Properties().Delete(context.Background(), id); err != nil {
				return fmt.Errorf("failed to delete property %d: %w", id, err)
			}

			fmt.Printf("Deleted property %d\n", id)

			return nil
		},
	}
}

// newPropertySubResourceCommand builds the list/add/delete command set shared
// by the property-scoped resources.
func newPropertySubResourceCommand(use, short string, client func(otc.Client) otc.SubResourceClient, columns []string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
	}

	listCmd := &cobra.Command{
		Use:   "list PROPERTY_ID",
		Short: "List " + use + " for a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			propertyID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid property id %q", args[0])
			}

			c, err := CreateClient()
			if err != nil {
				return err
			}

			records, err := client(c).List(context.Background(), propertyID, listParamsFromFlags(cmd))
			if err != nil {
				return fmt.Errorf("failed to list %s for property %d: %w", use, propertyID, err)
			}

			return OutputRecords(records, columns)
		},
	}
	addListFlags(listCmd)
	cmd.AddCommand(listCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "add PROPERTY_ID key=value ...",
		Short: "Add one of " + use + " to a property",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			propertyID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid property id %q", args[0])
			}

			data, err := ParseFieldArgs(args[1:])
			if err != nil {
				return err
			}

			c, err := CreateClient()
			if err != nil {
				return err
			}

			record, err := client(c).Create(context.Background(), propertyID, data)
			if err != nil {
				return fmt.Errorf("failed to add %s to property %d: %w", use, propertyID, err)
			}

			return OutputRecord(record)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete PROPERTY_ID ID",
		Short: "Delete one of " + use + " from a property",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			propertyID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid property id %q", args[0])
			}

			id, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[1])
			}

			c, err := CreateClient()
			if err != nil {
				return err
			}

			if err := client(c).Delete(context.Background(), propertyID, id); err != nil {
				return fmt.Errorf("failed to delete %s %d from property %d: %w", use, id, propertyID, err)
			}

			fmt.Printf("Deleted %s %d from property %d\n", use, id, propertyID)

			return nil
		},
	})

	return cmd
}

func newDocumentsCommand() *cobra.Command {
	cmd := newPropertySubResourceCommand("documents", "Manage property documents",
		func(c otc.Client) otc.SubResourceClient { return c.PropertyDocuments() },
		[]string{"id", "title", "name"})

	uploadCmd := &cobra.Command{
		Use:   "upload PROPERTY_ID FILE",
		Short: "Upload a document to a property",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			propertyID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid property id %q", args[0])
			}

			content, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[1], err)
			}

			title, _ := cmd.Flags().GetString("title")
			filename := filepath.Base(args[1])

			fields := map[string]string{}
			if title != "" {
				fields["title"] = title
			}

			c, err := CreateClient()
			if err != nil {
				return err
			}

			record, err := c.PropertyDocuments().Upload(context.Background(), propertyID, filename, content, fields)
			if err != nil {
				return fmt.Errorf("failed to upload document to property %d: %w", propertyID, err)
			}

			return OutputRecord(record)
		},
	}
	uploadCmd.Flags().String("title", "", "document title")
	cmd.AddCommand(uploadCmd)

	return cmd
}

func newFieldsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List the provider's property field definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			records, err := client.PropertyFieldDefinitions().List(context.Background(), listParamsFromFlags(cmd))
			if err != nil {
				return fmt.Errorf("failed to list property fields: %w", err)
			}

			return OutputRecords(records, []string{"id", "key", "title", "type"})
		},
	}

	addListFlags(cmd)

	return cmd
}
