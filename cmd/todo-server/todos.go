package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shouta256/todo-next-spring/internal/app"
	"github.com/shouta256/todo-next-spring/internal/model"
	"github.com/shouta256/todo-next-spring/internal/todo"
	"github.com/spf13/cobra"
)

var todosFlags struct {
	user   int64
	folder int64
	all    bool
}

var todosCmd = &cobra.Command{
	Use:   "todos",
	Short: "List a user's todos",
	Long: `List a user's todos.

Without --folder or --all only todos that are not filed in a folder are shown.`,
	Args: cobra.NoArgs,
	RunE: runTodos,
}

func init() {
	f := todosCmd.Flags()
	f.Int64Var(&todosFlags.user, "user", 0, "Owner user id")
	f.Int64Var(&todosFlags.folder, "folder", 0, "Only todos in this folder")
	f.BoolVar(&todosFlags.all, "all", false, "Every todo of the user")
	todosCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(todosCmd)
}

func runTodos(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd, app.Options{})
	if err != nil {
		return err
	}
	defer a.Close()

	var folderID *int64
	if cmd.Flags().Changed("folder") {
		folderID = &todosFlags.folder
	}

	todos, err := a.Todos.List(cmd.Context(), todosFlags.user, todo.ScopeFor(todosFlags.all, folderID))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	renderTodos(out, newListStyles(lipgloss.NewRenderer(out)), todos)
	return nil
}

func renderTodos(w io.Writer, s listStyles, todos []model.Todo) {
	if len(todos) == 0 {
		fmt.Fprintln(w, s.Label.Render("No todos."))
		return
	}

	fmt.Fprintln(w, s.Header.Render(fmt.Sprintf("%d todo(s)", len(todos))))
	for _, t := range todos {
		check := "[ ]"
		title := s.Todo.Render(t.Title)
		if t.Completed {
			check = s.Check.Render("[x]")
			title = s.TodoDone.Render(t.Title)
		}

		parts := []string{
			check,
			s.Label.Render(fmt.Sprintf("#%d", t.ID)),
			title,
			s.Estimate.Render(fmt.Sprintf("%d min", t.PredictedCompletionTime)),
			s.priority(strings.ToLower(t.Priority)).Render(t.Priority),
		}
		if t.TaskType != "" {
			parts = append(parts, s.Label.Render(t.TaskType))
		}
		if t.StartTime != nil {
			parts = append(parts, s.Label.Render(t.StartTime.Format("2006-01-02 15:04")))
		}
		if t.FolderID != nil {
			parts = append(parts, s.Label.Render(fmt.Sprintf("folder %d", *t.FolderID)))
		}
		fmt.Fprintln(w, strings.Join(parts, "  "))
	}
}
