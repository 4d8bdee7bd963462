package panel

import (
	"os/exec"
	"runtime"

	"folderpick/internal/errors"
	"folderpick/internal/log"
)

// ExecPlayer plays media by running Command with the URL appended
type ExecPlayer struct {
	Command []string
}

type processPlayback struct {
	cmd  *exec.Cmd
	done chan struct{}
}

func (p *processPlayback) Stop() error {
	select {
	case <-p.done:
		return nil
	default:
	}
	if err := p.cmd.Process.Kill(); err != nil {
		return err
	}
	<-p.done
	return nil
}

// Play starts the player in the background
func (e ExecPlayer) Play(src string) (Playback, error) {
	if len(e.Command) == 0 {
		return nil, errors.NewKind(errors.PreviewFailed, "no media player configured")
	}
	args := append(append([]string{}, e.Command[1:]...), src)
	cmd := exec.Command(e.Command[0], args...)
	if err := cmd.Start(); err != nil {
		return nil, errors.WrapKind(err, errors.PreviewFailed, "start "+e.Command[0])
	}

	pb := &processPlayback{cmd: cmd, done: make(chan struct{})}
	go func() {
		if err := cmd.Wait(); err != nil {
			log.LogWithFields(log.F("player", e.Command[0])).Debug("player exited", err)
		}
		close(pb.done)
	}()
	return pb, nil
}

// SystemOpener opens a target with Command, or the platform's default
// handler when Command is empty
type SystemOpener struct {
	Command []string
}

func (s SystemOpener) command(target string) *exec.Cmd {
	if len(s.Command) > 0 {
		args := append(append([]string{}, s.Command[1:]...), target)
		return exec.Command(s.Command[0], args...)
	}
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", target)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		return exec.Command("xdg-open", target)
	}
}

// Open launches the handler without waiting for it
func (s SystemOpener) Open(target string) error {
	cmd := s.command(target)
	if err := cmd.Start(); err != nil {
		return errors.WrapKind(err, errors.PreviewFailed, "open "+target)
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
