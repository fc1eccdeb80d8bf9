package bus

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const SockName = "control.sock"
const PidName = "sencheck.pid"
const ProtoVer = "0.1"

// ~/.cache/sencheck/control.sock
func SockPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	hd := filepath.Join(dir, "sencheck")
	return filepath.Join(hd, SockName), nil
}

// ~/.cache/sencheck/sencheck.pid
func PidPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	hd := filepath.Join(dir, "sencheck")
	return filepath.Join(hd, PidName), nil
}

func Listen() (net.Listener, error) {
	sp, err := SockPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(sp), 0o700); err != nil {
		return nil, err
	}
	_ = os.Remove(sp) // stale socket from last run
	return net.Listen("unix", sp)
}

func Dial() (net.Conn, error) {
	sp, err := SockPath()
	if err != nil {
		return nil, err
	}
	return net.Dial("unix", sp)
}

// SendCommand sends one verb plus optional payload and returns the
// daemon's single-line response. Payload newlines are flattened since
// the protocol is line delimited.
func SendCommand(verb, payload string) (string, error) {
	c, err := Dial()
	if err != nil {
		return "", err
	}
	defer c.Close()

	if _, err := fmt.Fprintf(c, "%s\n", EncodeCommand(verb, payload)); err != nil {
		return "", err
	}

	resp, err := bufio.NewReader(c).ReadString('\n')
	return strings.TrimRight(resp, "\n"), err
}

// EncodeCommand joins verb and payload into one protocol line.
func EncodeCommand(verb, payload string) string {
	payload = strings.ReplaceAll(payload, "\n", " ")
	if payload == "" {
		return verb
	}
	return verb + " " + payload
}

// ParseCommand splits a protocol line into verb and payload.
func ParseCommand(line string) (verb, payload string) {
	line = strings.TrimRight(line, "\n")
	verb, payload, _ = strings.Cut(line, " ")
	return verb, payload
}

func CheckExistingDaemon() error {
	pidPath, err := PidPath()
	if err != nil {
		return err
	}

	pidData, err := os.ReadFile(pidPath)
	if os.IsNotExist(err) {
		return nil // no existing daemon
	}
	if err != nil {
		return err
	}

	pid, err := strconv.Atoi(string(pidData))
	if err != nil {
		return nil // invalid pid file, assume stale
	}

	// Check if process exists
	proc, err := os.FindProcess(pid)
	if err != nil {
		return nil
	}

	// Try to signal the process to check if it's alive
	if err := proc.Signal(os.Signal(nil)); err != nil {
		return nil // process not alive, stale pid file
	}

	return fmt.Errorf("daemon already running with PID %d", pid)
}

func CreatePidFile() error {
	pidPath, err := PidPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(pidPath), 0o700); err != nil {
		return err
	}

	pid := os.Getpid()
	return os.WriteFile(pidPath, []byte(strconv.Itoa(pid)), 0o600)
}

func RemovePidFile() error {
	pidPath, err := PidPath()
	if err != nil {
		return err
	}
	return os.Remove(pidPath)
}
