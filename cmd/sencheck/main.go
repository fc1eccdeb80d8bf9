package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sencheck/sencheck/internal/bus"
	"github.com/sencheck/sencheck/internal/config"
	"github.com/sencheck/sencheck/internal/daemon"
	"github.com/sencheck/sencheck/internal/speech"
	"github.com/sencheck/sencheck/internal/tui"
	"github.com/spf13/cobra"
)

func main() {
	_ = rootCmd.Execute()
}

var rootCmd = &cobra.Command{
	Use:   "sencheck",
	Short: "Check and correct your sentences with AI suggestions",
}

func init() {
	rootCmd.AddCommand(
		serveCmd(),
		submitCmd(),
		turnsCmd(),
		selectCmd(),
		sessionCmd(),
		pickCmd(),
		confirmCmd(),
		regenerateCmd(),
		resetCmd(),
		statusCmd(),
		versionCmd(),
		stopCmd(),
		configureCmd(),
		sayCmd(),
		transcribeCmd(),
	)
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := daemon.New()
			if err != nil {
				return fmt.Errorf("failed to create daemon: %w", err)
			}
			return d.Run()
		},
	}
}

func submitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit <text>",
		Short: "Submit a sentence for checking",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand("submit", strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("failed to submit text: %w", err)
			}
			fmt.Println(resp)
			return nil
		},
	}
}

func turnsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "turns",
		Short: "Show the conversation transcript",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand("turns", "")
			if err != nil {
				return fmt.Errorf("failed to fetch turns: %w", err)
			}

			var views []daemon.TurnView
			if err := daemon.DecodeData(resp, &views); err != nil {
				return err
			}

			for _, v := range views {
				highlights := make([]tui.Highlight, 0, len(v.Spans))
				for _, s := range v.Spans {
					highlights = append(highlights, tui.Highlight{
						ErrorText: s.ErrorText,
						Category:  s.Category,
					})
				}
				fmt.Println(tui.RenderTurn(v.ID, v.Text, v.Origin, highlights))
				if v.Detection == "pending" {
					fmt.Println(tui.StyleMuted.Render("    checking..."))
				}
				for _, s := range v.Spans {
					fmt.Println(tui.StyleSubtle.Render(fmt.Sprintf(
						"    %s %q -> hint %q  (sencheck select %d %s %q)",
						s.Category, s.ErrorText, s.TargetHint, v.ID, s.Category, s.ErrorText)))
				}
			}
			return nil
		},
	}
}

func selectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <turn-id> <category> <error-text>",
		Short: "Pick an error span and fetch suggestions for it",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := fmt.Sprintf("%s %s %s", args[0], args[1], strings.Join(args[2:], " "))
			resp, err := bus.SendCommand("select", payload)
			if err != nil {
				return fmt.Errorf("failed to select span: %w", err)
			}
			fmt.Println(resp)
			return nil
		},
	}
}

func sessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Show the current suggestion session",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand("session", "")
			if err != nil {
				return fmt.Errorf("failed to fetch session: %w", err)
			}

			var view struct {
				State      string   `json:"State"`
				ErrorText  string   `json:"ErrorText"`
				Category   string   `json:"Category"`
				Candidates []string `json:"Candidates"`
				Selected   string   `json:"Selected"`
				Failed     bool     `json:"Failed"`
			}
			if err := daemon.DecodeData(resp, &view); err != nil {
				return err
			}

			if view.State == "idle" {
				fmt.Println(tui.StyleMuted.Render("No suggestion session. Click a highlighted word first: sencheck select ..."))
				return nil
			}
			fmt.Print(tui.RenderSession(view.ErrorText, view.Category, view.Selected, view.Candidates, view.Failed))
			return nil
		},
	}
}

func pickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pick <index>",
		Short: "Select one of the three suggestion candidates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand("pick", args[0])
			if err != nil {
				return fmt.Errorf("failed to pick candidate: %w", err)
			}
			fmt.Println(resp)
			return nil
		},
	}
}

func confirmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "confirm",
		Short: "Apply the selected suggestion as a corrected sentence",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand("confirm", "")
			if err != nil {
				return fmt.Errorf("failed to confirm suggestion: %w", err)
			}
			fmt.Println(resp)
			return nil
		},
	}
}

func regenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regenerate",
		Short: "Request a fresh set of suggestions for the same error",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand("regen", "")
			if err != nil {
				return fmt.Errorf("failed to regenerate suggestions: %w", err)
			}
			fmt.Println(resp)
			return nil
		},
	}
}

func resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the transcript and start over",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand("reset", "")
			if err != nil {
				return fmt.Errorf("failed to reset: %w", err)
			}
			fmt.Println(resp)
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get daemon status",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand("status", "")
			if err != nil {
				return fmt.Errorf("failed to get status: %w", err)
			}
			fmt.Println(resp)
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Get protocol version",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand("version", "")
			if err != nil {
				return fmt.Errorf("failed to get version: %w", err)
			}
			fmt.Println(resp)
			return nil
		},
	}
}

func stopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand("quit", "")
			if err != nil {
				return fmt.Errorf("failed to stop daemon: %w", err)
			}
			fmt.Println(resp)
			return nil
		},
	}
}

func configureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Interactive configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.RunConfigure()
		},
	}
}

func sayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "say <text>",
		Short: "Read text aloud through the daemon's speech synthesis",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand("say", strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("failed to speak: %w", err)
			}
			fmt.Println(resp)
			return nil
		},
	}
}

func transcribeCmd() *cobra.Command {
	var submit bool

	cmd := &cobra.Command{
		Use:   "transcribe <audio-file>",
		Short: "Transcribe a recorded audio file to text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.Speech.Enabled {
				return fmt.Errorf("speech is disabled: run sencheck configure")
			}

			transcriber, err := speech.NewTranscriber(cfg.ToSpeechConfig())
			if err != nil {
				return fmt.Errorf("failed to create transcriber: %w", err)
			}

			audio, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read audio file: %w", err)
			}

			text, err := transcriber.Transcribe(context.Background(), audio, filepath.Base(args[0]))
			if err != nil {
				return fmt.Errorf("transcription failed: %w", err)
			}
			fmt.Println(text)

			if submit && text != "" {
				resp, err := bus.SendCommand("submit", text)
				if err != nil {
					return fmt.Errorf("failed to submit transcription: %w", err)
				}
				fmt.Println(resp)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&submit, "submit", false, "submit the transcription for checking")
	return cmd
}
