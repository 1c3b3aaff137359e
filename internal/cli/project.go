package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/crm/internal/model"
)

var (
	projectName     string
	projectDesc     string
	projectClientID string
	projectStart    string
	projectEnd      string
	projectStatus   string
)

const dateLayout = "2006-01-02"

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage the acting user's projects",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects with progress",
	RunE:  runProjectList,
}

var projectShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a project and its tasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectShow,
}

var projectAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a project under an owned client",
	RunE:  runProjectAdd,
}

var projectEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update a project's editable fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectEdit,
}

var projectRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a project and its tasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectRm,
}

func init() {
	for _, c := range []*cobra.Command{projectAddCmd, projectEditCmd} {
		c.Flags().StringVar(&projectName, "name", "", "Project name (required)")
		c.Flags().StringVar(&projectDesc, "desc", "", "Description")
		c.Flags().StringVar(&projectClientID, "client", "", "Owning client id (required)")
		c.Flags().StringVar(&projectStart, "start", "", "Start date (YYYY-MM-DD, default today)")
		c.Flags().StringVar(&projectEnd, "end", "", "End date (YYYY-MM-DD)")
		c.Flags().StringVar(&projectStatus, "status", "",
			"Status: not_started, in_progress, on_hold, completed, cancelled")
	}

	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectEditCmd)
	projectCmd.AddCommand(projectRmCmd)
}

// projectPayload builds a project from the shared flags.
func projectPayload(id string) (model.Project, error) {
	p := model.Project{
		ID:          id,
		Name:        projectName,
		Description: projectDesc,
		ClientID:    projectClientID,
		Status:      projectStatus,
		StartDate:   time.Now().UTC().Truncate(24 * time.Hour),
	}
	if projectStart != "" {
		start, err := time.Parse(dateLayout, projectStart)
		if err != nil {
			return model.Project{}, fmt.Errorf("parsing start date: %w", err)
		}
		p.StartDate = start
	}
	if projectEnd != "" {
		end, err := time.Parse(dateLayout, projectEnd)
		if err != nil {
			return model.Project{}, fmt.Errorf("parsing end date: %w", err)
		}
		p.EndDate = &end
	}
	return p, nil
}

func runProjectList(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	userID, err := requireUser()
	if err != nil {
		return err
	}

	projects, err := svc.ListProjects(context.Background(), userID)
	if err != nil {
		return err
	}

	for _, p := range projects {
		fmt.Printf("%s\t%s\t%s\t%s\t%.2f%%\n",
			p.ID, p.Name, p.ClientName, p.Status, p.Progress())
	}
	return nil
}

func runProjectShow(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	userID, err := requireUser()
	if err != nil {
		return err
	}

	p, err := svc.GetProject(context.Background(), userID, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s\t%s\t%s\t%s\t%.2f%%\n",
		p.ID, p.Name, p.ClientName, p.Status, p.Progress())
	for _, t := range p.Tasks {
		done := " "
		if t.Completed {
			done = "x"
		}
		fmt.Printf("  [%s] %s\t%s\t%s\n", done, t.ID, t.Title, model.PriorityLabel(t.Priority))
	}
	return nil
}

func runProjectAdd(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	userID, err := requireUser()
	if err != nil {
		return err
	}

	payload, err := projectPayload("")
	if err != nil {
		return err
	}

	p, err := svc.CreateProject(context.Background(), userID, payload)
	if err != nil {
		return err
	}

	fmt.Printf("created project %s (%s)\n", p.ID, p.Name)
	return nil
}

func runProjectEdit(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	userID, err := requireUser()
	if err != nil {
		return err
	}

	payload, err := projectPayload(args[0])
	if err != nil {
		return err
	}

	p, err := svc.UpdateProject(context.Background(), userID, args[0], payload)
	if err != nil {
		return err
	}

	fmt.Printf("updated project %s (%s)\n", p.ID, p.Name)
	return nil
}

func runProjectRm(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	userID, err := requireUser()
	if err != nil {
		return err
	}

	if err := svc.DeleteProject(context.Background(), userID, args[0]); err != nil {
		return err
	}

	fmt.Printf("deleted project %s\n", args[0])
	return nil
}
