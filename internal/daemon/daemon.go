package daemon

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/sencheck/sencheck/internal/annotate"
	"github.com/sencheck/sencheck/internal/bus"
	"github.com/sencheck/sencheck/internal/config"
	"github.com/sencheck/sencheck/internal/engine"
	"github.com/sencheck/sencheck/internal/notify"
	"github.com/sencheck/sencheck/internal/speech"
	"github.com/sencheck/sencheck/internal/suggest"
)

type Daemon struct {
	engine      *engine.Engine
	synthesizer speech.Synthesizer
	player      string

	manager *config.Manager
	ctx     context.Context
	cancel  context.CancelFunc
}

func New() (*Daemon, error) {
	manager, err := config.NewManager()
	if err != nil {
		return nil, err
	}
	cfg := manager.GetConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	detector, err := annotate.NewDetector(cfg.ToDetectorConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create detector: %w", err)
	}
	suggester, err := suggest.NewSuggester(cfg.ToSuggesterConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create suggester: %w", err)
	}

	var notifier notify.Notifier = notify.Nop{}
	if cfg.Notifications.Enabled && cfg.Notifications.Type == "desktop" {
		notifier = notify.Desktop{}
	}

	var synthesizer speech.Synthesizer
	if cfg.Speech.Enabled {
		synthesizer, err = speech.NewSynthesizer(cfg.ToSpeechConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to create synthesizer: %w", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Daemon{
		engine: engine.New(engine.Config{
			Detector:       detector,
			Suggester:      suggester,
			Notifier:       notifier,
			RequestTimeout: cfg.Engine.RequestTimeout,
		}),
		synthesizer: synthesizer,
		player:      cfg.Speech.Player,
		manager:     manager,
		ctx:         ctx,
		cancel:      cancel,
	}, nil
}

func (d *Daemon) Run() error {
	if err := bus.CheckExistingDaemon(); err != nil {
		return err
	}

	ln, err := bus.Listen()
	if err != nil {
		return err
	}
	defer ln.Close()

	if err := bus.CreatePidFile(); err != nil {
		return fmt.Errorf("failed to create PID file: %w", err)
	}
	defer bus.RemovePidFile()

	if err := d.manager.StartWatching(d.ctx); err != nil {
		log.Printf("Daemon: config watch unavailable: %v", err)
	}
	defer d.manager.Stop()
	defer d.engine.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigCh)

	go func() {
		sig := <-sigCh
		log.Printf("Received signal %v, shutting down gracefully", sig)
		d.cancel()
	}()

	// Close the listener when context is done
	go func() {
		<-d.ctx.Done()
		ln.Close()
	}()

	log.Printf("Daemon started, listening on socket")

	for {
		c, err := ln.Accept()
		if err != nil {
			if d.ctx.Err() != nil {
				log.Printf("Shutdown requested")
				return nil
			}
			log.Printf("Accept error: %v", err)
			return fmt.Errorf("accept failed: %w", err)
		}
		go d.handle(c)
	}
}

func (d *Daemon) handle(c net.Conn) {
	defer c.Close()

	line, err := bufio.NewReader(c).ReadString('\n')
	if err != nil {
		log.Printf("Client read error: %v", err)
		fmt.Fprintf(c, "ERR read_error: %v\n", err)
		return
	}

	fmt.Fprintf(c, "%s\n", d.Dispatch(line))
}

// Dispatch executes one protocol line and returns the response line.
func (d *Daemon) Dispatch(line string) string {
	verb, payload := bus.ParseCommand(line)

	switch verb {
	case "submit":
		id, err := d.engine.SubmitText(payload)
		if err != nil {
			return errLine(err)
		}
		return fmt.Sprintf("OK id=%d", id)

	case "turns":
		return dataLine(TurnViews(d.engine))

	case "spans":
		id, err := strconv.ParseUint(payload, 10, 64)
		if err != nil {
			return fmt.Sprintf("ERR bad turn id %q", payload)
		}
		spans, err := d.engine.Spans(transcriptID(id))
		if err != nil {
			return errLine(err)
		}
		return dataLine(SpanViews(spans))

	case "select":
		fields := strings.SplitN(payload, " ", 3)
		if len(fields) != 3 {
			return "ERR usage: select <turn-id> <category> <error-text>"
		}
		id, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return fmt.Sprintf("ERR bad turn id %q", fields[0])
		}
		cat := annotate.Category(fields[1])
		if !cat.Valid() {
			return fmt.Sprintf("ERR bad category %q", fields[1])
		}
		if err := d.engine.SelectSpan(transcriptID(id), fields[2], cat); err != nil {
			return errLine(err)
		}
		return "OK selected"

	case "session":
		view, _ := d.engine.Session()
		return dataLine(view)

	case "pick":
		i, err := strconv.Atoi(payload)
		if err != nil {
			return fmt.Sprintf("ERR bad candidate index %q", payload)
		}
		if err := d.engine.PickCandidate(i); err != nil {
			return errLine(err)
		}
		return "OK picked"

	case "confirm":
		if err := d.engine.ConfirmSelection(); err != nil {
			return errLine(err)
		}
		return "OK confirmed"

	case "regen":
		if err := d.engine.Regenerate(); err != nil {
			return errLine(err)
		}
		return "OK regenerating"

	case "reset":
		d.engine.Reset()
		return "OK reset"

	case "registry":
		return dataLine(d.engine.CorrectedErrors())

	case "say":
		if err := d.say(payload); err != nil {
			return errLine(err)
		}
		return "OK speaking"

	case "status":
		view, _ := d.engine.Session()
		return fmt.Sprintf("STATUS turns=%d session=%s", len(d.engine.Turns()), view.State)

	case "version":
		return fmt.Sprintf("STATUS proto=%s", bus.ProtoVer)

	case "quit":
		d.cancel()
		return "OK quitting"

	default:
		log.Printf("Unknown command: %q", verb)
		return fmt.Sprintf("ERR unknown=%q", verb)
	}
}

// say synthesizes the text and hands the audio to the configured
// player. Failures never disturb annotation state.
func (d *Daemon) say(text string) error {
	if d.synthesizer == nil {
		return fmt.Errorf("speech synthesis not enabled")
	}
	if text == "" {
		return fmt.Errorf("nothing to say")
	}

	audio, err := d.synthesizer.Synthesize(d.ctx, text)
	if err != nil {
		return err
	}

	f, err := os.CreateTemp("", "sencheck-*.mp3")
	if err != nil {
		return err
	}
	path := f.Name()
	if _, err := f.Write(audio); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	f.Close()

	go func() {
		defer os.Remove(path)
		if err := exec.Command(d.player, path).Run(); err != nil {
			log.Printf("Daemon: playback failed: %v", err)
		}
	}()
	return nil
}

func errLine(err error) string {
	return "ERR " + strings.ReplaceAll(err.Error(), "\n", " ")
}

func dataLine(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return errLine(err)
	}
	return "DATA " + string(b)
}
