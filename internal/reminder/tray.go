package reminder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/emberhabits/ember/internal/constants"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// TrayScheduler talks to the ember-tray companion app over its localhost
// webhook. The tray app owns timed delivery; this side only issues
// schedule/cancel commands and immediate notifications. Permission is
// considered granted exactly when a verified tray process is reachable.
type TrayScheduler struct{}

// Request is the webhook command envelope.
type Request struct {
	Action     string `json:"action"` // notify, schedule_daily, schedule_at, cancel
	ID         string `json:"id,omitempty"`
	Title      string `json:"title,omitempty"`
	Body       string `json:"body,omitempty"`
	Hour       int    `json:"hour,omitempty"`
	Minute     int    `json:"minute,omitempty"`
	FireAt     string `json:"fire_at,omitempty"` // RFC3339 for one-shot triggers
	DurationMs uint32 `json:"duration_ms,omitempty"`
}

func NewTrayScheduler() *TrayScheduler {
	return &TrayScheduler{}
}

// Notify delivers an immediate notification, bypassing any trigger.
func (t *TrayScheduler) Notify(text string) error {
	return t.post(Request{
		Action:     "notify",
		Title:      constants.ReminderTitle,
		Body:       text,
		DurationMs: constants.NotificationDurationMs,
	})
}

func (t *TrayScheduler) ScheduleDaily(id string, content Content, hour, minute int) error {
	return t.post(Request{
		Action: "schedule_daily",
		ID:     id,
		Title:  content.Title,
		Body:   content.Body,
		Hour:   hour,
		Minute: minute,
	})
}

func (t *TrayScheduler) ScheduleAt(id string, content Content, at time.Time) error {
	return t.post(Request{
		Action: "schedule_at",
		ID:     id,
		Title:  content.Title,
		Body:   content.Body,
		FireAt: at.Format(time.RFC3339),
	})
}

func (t *TrayScheduler) Cancel(id string) error {
	return t.post(Request{Action: "cancel", ID: id})
}

// PermissionGranted reports whether the tray app is running and verified.
func (t *TrayScheduler) PermissionGranted() bool {
	configDir, err := TrayConfigDir()
	if err != nil {
		return false
	}
	_, _, err = findAndValidateTrayProcess(filepath.Join(configDir, constants.NotifierLockfileName))
	return err == nil
}

func (t *TrayScheduler) post(req Request) error {
	configDir, err := TrayConfigDir()
	if err != nil {
		return err
	}

	port, secret, err := findAndValidateTrayProcess(filepath.Join(configDir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	return send(port, secret, req)
}

// TrayConfigDir returns the configuration directory used by the tray app. A
// settings.json in the default dir may redirect the lockfile location.
func TrayConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	settingsPath := filepath.Join(trayConfigDir, "settings.json")
	if _, err := os.Stat(settingsPath); err == nil {
		data, err := os.ReadFile(settingsPath)
		if err == nil {
			var store struct {
				Settings struct {
					LockfileDir *string `json:"lockfile_dir"`
				} `json:"settings"`
			}
			if err := json.Unmarshal(data, &store); err == nil {
				if store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
					return *store.Settings.LockfileDir, nil
				}
			}
		}
	}

	return trayConfigDir, nil
}

// findAndValidateTrayProcess reads the port|pid|secret lockfile and verifies
// the recorded process is actually the tray app before trusting it.
func findAndValidateTrayProcess(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", errors.New("ember-tray is not running")
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", errors.New("lockfile is malformed")
	}

	port := parts[0]
	if strings.TrimSpace(port) == "" {
		return "", "", errors.New("port in lockfile is empty")
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return "", "", errors.New("invalid port number in lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return "", "", fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", "", errors.New("invalid process ID in lockfile")
	}
	secret := parts[2]
	if strings.TrimSpace(secret) == "" {
		return "", "", errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", errors.New("ember-tray process not running")
	}

	if !strings.HasPrefix(process.Executable(), constants.TrayAppIdentifier) {
		return "", "", fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.TrayAppIdentifier, process.Executable())
	}

	return port, secret, nil
}

func send(port string, secret string, payload Request) error {
	url := fmt.Sprintf("http://127.0.0.1:%s", port)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Ember-Secret", secret)

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(body))
}
