package feedback

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoPlayer indicates no supported audio player is installed.
var ErrNoPlayer = errors.New("no audio player found")

var soundExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".ogg":  true,
	".aiff": true,
}

// playerCommands lists players in order of preference with their arguments.
var playerCommands = [][]string{
	{"paplay"},
	{"afplay"},
	{"aplay", "-q"},
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
}

// Sounds lists the sound file names in dir, sorted. A missing directory has no sounds.
func Sounds(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read sounds dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if soundExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// SoundPath resolves a sound name inside dir; empty names resolve to "".
func SoundPath(dir, name string) string {
	if name == "" {
		return ""
	}
	return filepath.Join(dir, filepath.Base(name))
}

// CommandPlayer plays sounds with an external program.
type CommandPlayer struct {
	Path string
	Args []string
	run  func(name string, args ...string) error
}

// DetectPlayer returns the first supported player found in PATH.
func DetectPlayer() (*CommandPlayer, error) {
	return detectPlayer(exec.LookPath)
}

func detectPlayer(lookPath func(string) (string, error)) (*CommandPlayer, error) {
	for _, command := range playerCommands {
		path, err := lookPath(command[0])
		if err != nil {
			continue
		}
		return &CommandPlayer{Path: path, Args: command[1:]}, nil
	}
	return nil, ErrNoPlayer
}

// Play runs the player and waits for it to exit.
func (player *CommandPlayer) Play(soundPath string) error {
	args := append(append([]string(nil), player.Args...), soundPath)
	run := player.run
	if run == nil {
		run = runCommand
	}
	if err := run(player.Path, args...); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(player.Path), err)
	}
	return nil
}

func runCommand(name string, args ...string) error {
	output, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
