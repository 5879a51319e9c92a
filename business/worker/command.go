package worker

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

type Command string

const (
	CommandStartRecording Command = "start-recording"
	CommandStopRecording  Command = "stop-recording"
	CommandVoiceMarker    Command = "voice-marker"
	CommandClear          Command = "clear"
	CommandSummary        Command = "summary"
	CommandReconnect      Command = "reconnect"
	CommandQuit           Command = "quit"
)

var keyBindings = map[byte]Command{
	's': CommandStartRecording,
	'e': CommandStopRecording,
	'v': CommandVoiceMarker,
	'c': CommandClear,
	'a': CommandSummary,
	'r': CommandReconnect,
	'q': CommandQuit,
}

// commandOperation reads single-key command lines from stdin and fans them
// out on the command topic. The quit key triggers worker shutdown directly.
func (w *Worker) commandOperation() {
	w.logger.Infow("worker: commandOperation: G started")
	defer w.logger.Infow("worker: commandOperation: G completed")

	printMenu()

	keyCh := make(chan byte)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			keyCh <- line[0]
		}
	}()

	w.logger.Infow("worker: commandOperation: G listening")
	for {
		select {
		case key := <-keyCh:
			cmd, ok := keyBindings[key]
			if !ok {
				w.logger.Infow("worker: commandOperation: unknown key", "key", string(key))
				continue
			}

			if cmd == CommandQuit {
				w.logger.Infow("worker: commandOperation: quit requested")
				w.Shutdown(nil)
				return
			}

			if err := w.broker.Publish(commandTopic, cmd); err != nil {
				w.logger.Errorw("worker: commandOperation", "ERROR", err)
			}

		case <-w.shut:
			w.logger.Infow("worker: commandOperation: received shut signal")
			return
		}
	}
}

func printMenu() {
	fmt.Println("commands:")
	fmt.Println("  s  start recording session")
	fmt.Println("  e  stop recording session and analyze")
	fmt.Println("  v  toggle voice marker")
	fmt.Println("  c  clear ledger")
	fmt.Println("  a  write periodic summary")
	fmt.Println("  r  reconnect camera")
	fmt.Println("  q  quit (flush and persist)")
}
