package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhle/crm/internal/model"
)

var (
	userEmail       string
	userDisplayName string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a new user",
	RunE:  runUserAdd,
}

var userShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserShow,
}

var userRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a user and everything the user owns",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserRm,
}

func init() {
	userAddCmd.Flags().StringVar(&userEmail, "email", "", "Email address (required)")
	userAddCmd.Flags().StringVar(&userDisplayName, "name", "", "Display name")

	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userShowCmd)
	userCmd.AddCommand(userRmCmd)
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	u, err := svc.CreateUser(context.Background(), model.User{
		Email:       userEmail,
		DisplayName: userDisplayName,
	})
	if err != nil {
		return err
	}

	fmt.Printf("created user %s (%s)\n", u.ID, u.Email)
	return nil
}

func runUserShow(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	u, err := svc.GetUser(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s\t%s\t%s\n", u.ID, u.Email, u.DisplayName)
	return nil
}

func runUserRm(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	if err := svc.DeleteUser(context.Background(), args[0]); err != nil {
		return err
	}

	fmt.Printf("deleted user %s\n", args[0])
	return nil
}
