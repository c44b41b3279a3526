package audio

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// ErrNoPlayer is returned when no player command is configured.
var ErrNoPlayer = errors.New("no player command configured")

// Player streams songs by handing their raw media URL to an external
// program such as mpv or vlc.
//
// The player process is started detached from the caller: Play returns as
// soon as the process is running and the process is reaped in the
// background.
//
// Example:
//
//	player := NewPlayer("mpv --no-video", logger)
//	if err := player.Play(song.MediaURL); err != nil {
//	    // show the error in the status bar
//	}
type Player struct {
	args   []string
	logger zerolog.Logger
}

// NewPlayer creates a Player from a command line. The command line is
// split on whitespace; the media URL is appended as the last argument.
func NewPlayer(commandLine string, logger zerolog.Logger) *Player {
	return &Player{
		args:   strings.Fields(commandLine),
		logger: logger,
	}
}

// Command returns the argv used to play url.
func (p *Player) Command(url string) []string {
	if len(p.args) == 0 {
		return nil
	}
	argv := make([]string, 0, len(p.args)+1)
	argv = append(argv, p.args...)
	return append(argv, url)
}

// Play starts the player for url.
func (p *Player) Play(url string) error {
	argv := p.Command(url)
	if argv == nil {
		return ErrNoPlayer
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return err
	}

	p.logger.Info().Str("player", argv[0]).Str("url", url).Int("pid", cmd.Process.Pid).Msg("Player started")
	go func() {
		if err := cmd.Wait(); err != nil {
			p.logger.Warn().Err(err).Str("player", argv[0]).Msg("Player exited with error")
		}
	}()
	return nil
}
