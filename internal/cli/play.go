package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newPlayCmd() *cobra.Command {
	var playerName string

	cmd := &cobra.Command{
		Use:   "play <player-id>",
		Short: "Play a duel interactively over the websocket gateway",
		Long: `Connect to the websocket gateway, join the matchmaking queue and
play a duel from the terminal.

When a puzzle arrives, type the answer and press enter to submit it.
Press Ctrl+C to leave.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			playerID := args[0]
			if playerName == "" {
				playerName = playerID
			}
			return playDuel(playerID, playerName)
		},
	}

	cmd.Flags().StringVar(&playerName, "name", "", "Display name (defaults to the player id)")

	return cmd
}

// envelope mirrors the gateway wire frame
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// gameState is the subset of the gameState event the CLI renders
type gameState struct {
	GameID        string `json:"gameId"`
	Player1       player `json:"player1"`
	Player2       player `json:"player2"`
	CurrentPuzzle puzzle `json:"currentPuzzle"`
	Status        string `json:"status"`
	TimeRemaining int    `json:"timeRemaining"`
}

type player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type puzzle struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type gameResult struct {
	GameID   string  `json:"gameId"`
	WinnerID *string `json:"winnerId"`
}

func playDuel(playerID, playerName string) error {
	conn, _, err := websocket.DefaultDialer.Dial(client.WebsocketURL(), nil)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	// Leave cleanly on Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		_ = sendFrame(conn, "leaveGame", map[string]string{"playerId": playerID})
		_ = conn.Close()
	}()

	if err := sendFrame(conn, "joinGame", map[string]any{
		"player": map[string]string{"id": playerID, "name": playerName},
	}); err != nil {
		return err
	}

	// Answers typed on stdin are submitted against the current game
	gameIDCh := make(chan string, 1)
	go readAnswers(conn, playerID, gameIDCh)

	for {
		var env envelope
		if err := conn.ReadJSON(&env); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			// Ctrl+C closes the connection underneath us
			select {
			case <-sigCh:
				return nil
			default:
			}
			return fmt.Errorf("stream error: %w", err)
		}

		switch env.Event {
		case "waitingForOpponent":
			fmt.Println("Waiting for an opponent...")
		case "gameState":
			var state gameState
			if err := json.Unmarshal(env.Data, &state); err != nil {
				continue
			}
			select {
			case gameIDCh <- state.GameID:
			default:
			}
			printGameState(state)
		case "gameResult":
			var result gameResult
			if err := json.Unmarshal(env.Data, &result); err != nil {
				continue
			}
			printGameResult(result, playerID)
			return nil
		}
	}
}

func sendFrame(conn *websocket.Conn, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return conn.WriteJSON(envelope{Event: event, Data: data})
}

// readAnswers reads answers from stdin and submits them. It waits for
// the first gameState to learn the game id.
func readAnswers(conn *websocket.Conn, playerID string, gameIDCh <-chan string) {
	gameID := <-gameIDCh

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			continue
		}
		_ = sendFrame(conn, "submitAnswer", map[string]string{
			"gameId":   gameID,
			"playerId": playerID,
			"answer":   answer,
		})
	}
}

func printGameState(state gameState) {
	fmt.Printf("\nGame: %s (%s vs %s)\n", state.GameID, state.Player1.Name, state.Player2.Name)
	fmt.Printf("Question: %s\n", state.CurrentPuzzle.Question)
	for i, opt := range state.CurrentPuzzle.Options {
		fmt.Printf("  %d) %s\n", i+1, opt)
	}
	fmt.Printf("Time limit: %ds\n", state.TimeRemaining)
	fmt.Print("Your answer: ")
}

func printGameResult(result gameResult, playerID string) {
	fmt.Println()
	switch {
	case result.WinnerID == nil:
		fmt.Println("Draw!")
	case *result.WinnerID == playerID:
		fmt.Println("You win!")
	default:
		fmt.Printf("You lose. Winner: %s\n", *result.WinnerID)
	}
}
