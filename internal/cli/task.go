package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/crm/internal/model"
)

var (
	taskTitle     string
	taskDesc      string
	taskProjectID string
	taskDue       string
	taskPriority  int
	taskCompleted bool
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage the acting user's tasks",
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks, incomplete first",
	RunE:  runTaskList,
}

var taskShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskShow,
}

var taskAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a task under an owned project",
	RunE:  runTaskAdd,
}

var taskEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update a task's editable fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskEdit,
}

var taskRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskRm,
}

var taskToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Flip a task's completion state",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskToggle,
}

func init() {
	taskListCmd.Flags().StringVar(&taskProjectID, "project", "",
		"Restrict to one project (must be owned)")

	for _, c := range []*cobra.Command{taskAddCmd, taskEditCmd} {
		c.Flags().StringVar(&taskTitle, "title", "", "Task title (required)")
		c.Flags().StringVar(&taskDesc, "desc", "", "Description")
		c.Flags().StringVar(&taskProjectID, "project", "", "Owning project id (required)")
		c.Flags().StringVar(&taskDue, "due", "", "Due date (YYYY-MM-DD)")
		c.Flags().IntVar(&taskPriority, "priority", model.TaskPriorityMedium,
			"Priority: 0 low, 1 medium, 2 high, 3 urgent")
	}
	taskEditCmd.Flags().BoolVar(&taskCompleted, "completed", false, "Completion state")

	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskShowCmd)
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskEditCmd)
	taskCmd.AddCommand(taskRmCmd)
	taskCmd.AddCommand(taskToggleCmd)
}

// taskPayload builds a task from the shared flags.
func taskPayload(id string) (model.Task, error) {
	t := model.Task{
		ID:          id,
		Title:       taskTitle,
		Description: taskDesc,
		ProjectID:   taskProjectID,
		Priority:    taskPriority,
		Completed:   taskCompleted,
	}
	if taskDue != "" {
		due, err := time.Parse(dateLayout, taskDue)
		if err != nil {
			return model.Task{}, fmt.Errorf("parsing due date: %w", err)
		}
		t.DueDate = &due
	}
	return t, nil
}

func printTask(t model.Task) {
	done := " "
	if t.Completed {
		done = "x"
	}
	due := "-"
	if t.DueDate != nil {
		due = t.DueDate.Format(dateLayout)
	}
	fmt.Printf("[%s] %s\t%s\t%s\tdue %s\n",
		done, t.ID, t.Title, model.PriorityLabel(t.Priority), due)
}

func runTaskList(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	userID, err := requireUser()
	if err != nil {
		return err
	}

	var projectID *string
	if taskProjectID != "" {
		projectID = &taskProjectID
	}

	tasks, err := svc.ListTasks(context.Background(), userID, projectID)
	if err != nil {
		return err
	}

	for _, t := range tasks {
		printTask(t)
	}
	return nil
}

func runTaskShow(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	userID, err := requireUser()
	if err != nil {
		return err
	}

	t, err := svc.GetTask(context.Background(), userID, args[0])
	if err != nil {
		return err
	}

	printTask(*t)
	return nil
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	userID, err := requireUser()
	if err != nil {
		return err
	}

	payload, err := taskPayload("")
	if err != nil {
		return err
	}

	t, err := svc.CreateTask(context.Background(), userID, payload)
	if err != nil {
		return err
	}

	fmt.Printf("created task %s (%s)\n", t.ID, t.Title)
	return nil
}

func runTaskEdit(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	userID, err := requireUser()
	if err != nil {
		return err
	}

	payload, err := taskPayload(args[0])
	if err != nil {
		return err
	}

	t, err := svc.UpdateTask(context.Background(), userID, args[0], payload)
	if err != nil {
		return err
	}

	fmt.Printf("updated task %s (%s)\n", t.ID, t.Title)
	return nil
}

func runTaskRm(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	userID, err := requireUser()
	if err != nil {
		return err
	}

	if err := svc.DeleteTask(context.Background(), userID, args[0]); err != nil {
		return err
	}

	fmt.Printf("deleted task %s\n", args[0])
	return nil
}

func runTaskToggle(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	userID, err := requireUser()
	if err != nil {
		return err
	}

	projectID, err := svc.ToggleTaskComplete(context.Background(), userID, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("toggled task %s (project %s)\n", args[0], projectID)
	return nil
}
