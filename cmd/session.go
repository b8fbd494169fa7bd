package cmd

import (
	"errors"
	"io"
	"tictactoe/agent"
	"tictactoe/console"
	"tictactoe/engine"
	"tictactoe/experiments"
	"tictactoe/game"

	"golang.org/x/exp/rand"
)

const noModel = "No trained model found. Run `tictactoe train` first."

// loadAgent reads the model at path into an agent in inference mode.
func loadAgent(path string, mark game.Mark, rng *rand.Rand) (*agent.Agent, error) {
	a := agent.New(mark, agent.WithRand(rng))
	if err := a.Load(path); err != nil {
		return nil, err
	}
	a.SetTraining(false)
	return a, nil
}

// agentOpponent seats a in whichever side the human leaves free.
func agentOpponent(a *agent.Agent) func(game.Mark) engine.Player {
	return func(mark game.Mark) engine.Player {
		return engine.NewAgentPlayer(a, mark)
	}
}

// playGame lets a human play the AI. Whoever moves first plays X.
func playGame(c *console.Console, opponent func(game.Mark) engine.Player, humanFirst bool) (game.Outcome, error) {
	c.Banner("PLAY AGAINST THE AI")
	c.Println("Enter moves as: row,col  (example: 1,2)")

	humanMark := game.O
	if humanFirst {
		humanMark = game.X
		c.Println("You go first! You are X, the AI is O.")
	} else {
		c.Println("AI goes first! The AI is X, you are O.")
	}

	human := c.Human()
	ai := c.Announce(opponent(humanMark.Opponent()), "AI")
	x, o := engine.Player(human), ai
	if !humanFirst {
		x, o = ai, human
	}

	e := engine.LocalEngine(game.NewBoard(), x, o)
	result, err := e.Run()
	if err != nil {
		return game.InProgress, err
	}

	c.PrintBoard(e.Board.State())
	switch result.Outcome.Winner() {
	case humanMark:
		c.Println("YOU WIN!")
	case humanMark.Opponent():
		c.Println("AI WINS!")
	default:
		c.Println("IT'S A TIE!")
	}
	return result.Outcome, nil
}

func printEvaluation(c *console.Console, ev experiments.Evaluation) {
	c.Banner("AI vs Random Results")
	c.Printf("Games: %d\n", ev.Games)
	c.Printf("AI wins: %d\n", ev.AgentWins)
	c.Printf("Random wins: %d\n", ev.RandomWins)
	c.Printf("Ties: %d\n", ev.Ties)
	c.Printf("Win rate: %.1f%%\n", ev.WinRate())
}

func printAbout(c *console.Console) {
	c.Banner("ABOUT Q-LEARNING")
	c.Println("Q-Learning is reinforcement learning where an agent learns by trial and error.")
	c.Println("Q = Quality of taking an action in a state.")
	c.Println("The agent updates Q-values based on rewards:")
	c.Println("  Win = +10, Loss = -10, Tie = -5")
	c.Println("Over many games, good moves get higher Q-values.")
}

// menu runs the interactive loop until the user exits or input ends.
func menu(c *console.Console, modelPath string, games int, rng *rand.Rand) error {
	for {
		c.Banner("TIC-TAC-TOE WITH Q-LEARNING AI")
		c.Println("1. Play against trained AI")
		c.Println("2. Watch AI vs random (quick proof)")
		c.Println("3. Learn about Q-Learning")
		c.Println("4. Exit")

		choice, err := c.Prompt("\nChoice (1-4): ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			a, err := loadAgent(modelPath, game.O, rng)
			if errors.Is(err, agent.ErrModelNotFound) {
				c.Println(noModel)
				continue
			}
			if err != nil {
				return err
			}
			if _, err := playGame(c, agentOpponent(a), rng.Intn(2) == 0); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
		case "2":
			a, err := loadAgent(modelPath, game.X, rng)
			if errors.Is(err, agent.ErrModelNotFound) {
				c.Println(noModel)
				continue
			}
			if err != nil {
				return err
			}
			ev, err := experiments.RunEvaluation(a, games, rng)
			if err != nil {
				return err
			}
			printEvaluation(c, ev)
		case "3":
			printAbout(c)
		case "4":
			c.Println("\nThanks for playing!")
			return nil
		default:
			c.Println("Invalid choice. Try again.")
		}
	}
}
