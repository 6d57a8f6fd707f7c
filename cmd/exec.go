package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/pylearn/internal/runner"
)

var execCmd = &cobra.Command{
	Use:   "exec <file.py|->",
	Short: "Run a Python file the way the editor does",
	Long: `Run a Python file with the configured interpreter and record the run
in the history. Use "-" to read the program from stdin. Pass --week and
--day to attach the run to a lesson.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := readSource(cmd.InOrStdin(), args[0])
		if err != nil {
			return err
		}

		s, closeFn, err := openServices(cmd, nil)
		if err != nil {
			return err
		}
		defer closeFn()

		req := runner.Request{Source: source}
		if weekArg, _ := cmd.Flags().GetString("week"); weekArg != "" {
			day, _ := cmd.Flags().GetInt("day")
			week, d, err := resolveDay(s.Curriculum, weekArg, fmt.Sprint(day))
			if err != nil {
				return err
			}
			req.Week, req.Day = week.Name, d
		}

		res, err := s.Runner.Run(cmd.Context(), req)
		if err != nil {
			return err
		}
		out := res.Display()
		fmt.Fprint(cmd.OutOrStdout(), out)
		if !strings.HasSuffix(out, "\n") {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		if res.Err != nil {
			var ee *runner.ExecError
			if errors.As(res.Err, &ee) {
				return errors.New(ee.Message())
			}
			return res.Err
		}
		return nil
	},
}

func init() {
	execCmd.Flags().String("week", "", "Week the run belongs to (number or name)")
	execCmd.Flags().Int("day", 1, "Day the run belongs to")
}

func readSource(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
