package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhle/crm/internal/model"
)

var (
	clientName    string
	clientEmail   string
	clientPhone   string
	clientAddress string
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage the acting user's clients",
}

var clientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients, newest first",
	RunE:  runClientList,
}

var clientShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a client and its projects",
	Args:  cobra.ExactArgs(1),
	RunE:  runClientShow,
}

var clientAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a client",
	RunE:  runClientAdd,
}

var clientEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update a client's editable fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runClientEdit,
}

var clientRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a client and its projects and tasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runClientRm,
}

func init() {
	for _, c := range []*cobra.Command{clientAddCmd, clientEditCmd} {
		c.Flags().StringVar(&clientName, "name", "", "Client name (required)")
		c.Flags().StringVar(&clientEmail, "email", "", "Email address")
		c.Flags().StringVar(&clientPhone, "phone", "", "Phone number")
		c.Flags().StringVar(&clientAddress, "address", "", "Postal address")
	}

	clientCmd.AddCommand(clientListCmd)
	clientCmd.AddCommand(clientShowCmd)
	clientCmd.AddCommand(clientAddCmd)
	clientCmd.AddCommand(clientEditCmd)
	clientCmd.AddCommand(clientRmCmd)
}

func runClientList(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	userID, err := requireUser()
	if err != nil {
		return err
	}

	clients, err := svc.ListClients(context.Background(), userID)
	if err != nil {
		return err
	}

	for _, c := range clients {
		fmt.Printf("%s\t%s\t%d project(s)\n", c.ID, c.Name, c.ProjectCount)
	}
	return nil
}

func runClientShow(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	userID, err := requireUser()
	if err != nil {
		return err
	}

	c, err := svc.GetClient(context.Background(), userID, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Email, c.Phone)
	for _, p := range c.Projects {
		fmt.Printf("  %s\t%s\t%s\t%.2f%%\n", p.ID, p.Name, p.Status, p.Progress())
	}
	return nil
}

func runClientAdd(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	userID, err := requireUser()
	if err != nil {
		return err
	}

	c, err := svc.CreateClient(context.Background(), userID, model.Client{
		Name:    clientName,
		Email:   clientEmail,
		Phone:   clientPhone,
		Address: clientAddress,
	})
	if err != nil {
		return err
	}

	fmt.Printf("created client %s (%s)\n", c.ID, c.Name)
	return nil
}

func runClientEdit(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	userID, err := requireUser()
	if err != nil {
		return err
	}

	c, err := svc.UpdateClient(context.Background(), userID, args[0], model.Client{
		ID:      args[0],
		Name:    clientName,
		Email:   clientEmail,
		Phone:   clientPhone,
		Address: clientAddress,
	})
	if err != nil {
		return err
	}

	fmt.Printf("updated client %s (%s)\n", c.ID, c.Name)
	return nil
}

func runClientRm(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	userID, err := requireUser()
	if err != nil {
		return err
	}

	if err := svc.DeleteClient(context.Background(), userID, args[0]); err != nil {
		return err
	}

	fmt.Printf("deleted client %s\n", args[0])
	return nil
}
