package main

import (
	"fmt"
	"time"

	"github.com/shouta256/todo-next-spring/internal/estimate"
	"github.com/shouta256/todo-next-spring/internal/todo"
	"github.com/spf13/cobra"
)

var estimateFlags struct {
	title     string
	taskType  string
	priority  string
	start     string
	frequency string
	context   string
}

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Print the predicted completion time in minutes",
	Args:  cobra.NoArgs,
	RunE:  runEstimate,
}

func init() {
	f := estimateCmd.Flags()
	f.StringVar(&estimateFlags.title, "title", "", "Task title")
	f.StringVar(&estimateFlags.taskType, "type", "", "Task type (coding, study, shopping, exercise)")
	f.StringVar(&estimateFlags.priority, "priority", "", "Priority (high, medium, low)")
	f.StringVar(&estimateFlags.start, "start", "", "Start time, yyyy-MM-ddTHH:mm[:ss]")
	f.StringVar(&estimateFlags.frequency, "frequency", "", "Frequency (daily, weekly)")
	f.StringVar(&estimateFlags.context, "context", "", "Context (office, home)")
	rootCmd.AddCommand(estimateCmd)
}

func runEstimate(cmd *cobra.Command, args []string) error {
	var start *time.Time
	if estimateFlags.start != "" {
		t, err := todo.ParseStartTime(estimateFlags.start)
		if err != nil {
			return err
		}
		start = &t
	}

	minutes := estimate.Minutes(estimate.Input{
		Title:     estimateFlags.title,
		TaskType:  estimateFlags.taskType,
		Priority:  estimateFlags.priority,
		StartTime: start,
		Frequency: estimateFlags.frequency,
		Context:   estimateFlags.context,
	})
	fmt.Fprintln(cmd.OutOrStdout(), minutes)
	return nil
}
