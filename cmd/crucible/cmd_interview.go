package main

import (
	"fmt"
	"strings"

	"github.com/crucible-hq/crucible/internal/domain"
	"github.com/crucible-hq/crucible/internal/timer"
)

// interviewStatus mirrors the daemon's interview status payload.
type interviewStatus struct {
	Active        bool              `json:"active"`
	State         string            `json:"state"`
	SessionID     string            `json:"sessionId"`
	Candidate     *domain.Candidate `json:"candidate"`
	QuestionIndex int               `json:"questionIndex"`
	Question      *domain.Question  `json:"question"`
	Difficulty    string            `json:"difficulty"`
	Answered      int               `json:"answered"`
	TimeRemaining int               `json:"timeRemaining"`
	TimerStatus   string            `json:"timerStatus"`
	ScoringError  string            `json:"scoringError"`
}

// cmdInterview drives the interview flow
func cmdInterview(args []string) error {
	if len(args) < 1 {
		fmt.Println(`Interview commands:

  crucible interview start <candidate-id>   Start an interview
  crucible interview status                 Show the current interview
  crucible interview answer <text>          Submit an answer
  crucible interview pause                  Pause the question clock
  crucible interview resume-timer           Resume the question clock
  crucible interview abandon                Discard the current interview
  crucible interview resumable              Check for an interrupted interview
  crucible interview resume                 Continue an interrupted interview
  crucible interview retry-scoring          Retry a failed scoring pass`)
		return nil
	}

	if err := requireDaemon(); err != nil {
		return err
	}

	switch args[0] {
	case "start":
		if len(args) < 2 {
			return fmt.Errorf("candidate ID required")
		}
		return cmdInterviewStart(args[1])
	case "status":
		return cmdInterviewStatus()
	case "answer":
		if len(args) < 2 {
			return fmt.Errorf("answer text required")
		}
		return cmdInterviewAnswer(strings.Join(args[1:], " "))
	case "pause":
		return interviewAction("POST", "/v1/interview/pause", "Clock paused.")
	case "resume-timer":
		return interviewAction("POST", "/v1/interview/resume-timer", "Clock running.")
	case "abandon":
		return interviewAction("DELETE", "/v1/interview", "Interview discarded.")
	case "resumable":
		return cmdInterviewResumable()
	case "resume":
		return cmdInterviewResume()
	case "retry-scoring":
		return interviewAction("POST", "/v1/interview/retry-scoring", "Scoring retry started.")
	default:
		return fmt.Errorf("unknown interview command: %s", args[0])
	}
}

func cmdInterviewStart(candidateID string) error {
	var status interviewStatus
	err := apiPost("POST", "/v1/interview", map[string]string{"candidateId": candidateID}, &status)
	if err != nil {
		return err
	}

	fmt.Printf("Interview started for %s\n\n", status.Candidate.Name)
	printQuestion(&status)
	return nil
}

func cmdInterviewStatus() error {
	var status interviewStatus
	if err := apiGet("/v1/interview", &status); err != nil {
		return err
	}

	if !status.Active && status.State == "" {
		fmt.Println("No interview in progress.")
		return nil
	}

	switch status.State {
	case "scoring":
		if status.ScoringError != "" {
			fmt.Printf("Scoring failed: %s\n", status.ScoringError)
			fmt.Println("Run 'crucible interview retry-scoring' to try again.")
			return nil
		}
		fmt.Println("All answers are in. Scoring...")
	case "completed":
		fmt.Printf("Interview completed. Final score: %d/100\n", status.Candidate.FinalScore)
		fmt.Printf("\n%s\n", status.Candidate.FinalSummary)
	default:
		fmt.Printf("Candidate: %s\n\n", status.Candidate.Name)
		printQuestion(&status)
	}
	return nil
}

func cmdInterviewAnswer(text string) error {
	var status interviewStatus
	if err := apiPost("POST", "/v1/interview/answer", map[string]string{"answer": text}, &status); err != nil {
		return err
	}

	fmt.Printf("Answer recorded (%d of %d).\n", status.Answered, domain.TotalQuestions)
	if status.State == "scoring" {
		fmt.Println("All answers are in. Scoring...")
	}
	return nil
}

func cmdInterviewResumable() error {
	var result struct {
		Resumable bool `json:"resumable"`
		Snapshot  struct {
			Candidate     *domain.Candidate `json:"candidate"`
			QuestionIndex int               `json:"questionIndex"`
			TimeRemaining int               `json:"timeRemaining"`
		} `json:"snapshot"`
	}
	if err := apiGet("/v1/interview/resumable", &result); err != nil {
		return err
	}

	if !result.Resumable {
		fmt.Println("No interrupted interview found.")
		return nil
	}

	fmt.Printf("Interrupted interview found:\n")
	fmt.Printf("  Candidate: %s\n", result.Snapshot.Candidate.Name)
	fmt.Printf("  Question:  %d of %d\n", result.Snapshot.QuestionIndex+1, domain.TotalQuestions)
	fmt.Printf("  Clock:     %s remaining (paused)\n", timer.FormatSeconds(result.Snapshot.TimeRemaining))
	fmt.Println("\nRun 'crucible interview resume' to continue.")
	return nil
}

func cmdInterviewResume() error {
	var status interviewStatus
	if err := apiPost("POST", "/v1/interview/resume", nil, &status); err != nil {
		return err
	}

	fmt.Printf("Interview resumed for %s\n", status.Candidate.Name)
	if status.State == "scoring" {
		fmt.Println("All answers are in. Scoring...")
		return nil
	}
	fmt.Println("The clock is paused. Run 'crucible interview resume-timer' when ready.")
	fmt.Println()
	printQuestion(&status)
	return nil
}

func interviewAction(method, path, success string) error {
	if err := apiPost(method, path, nil, nil); err != nil {
		return err
	}
	fmt.Println(success)
	return nil
}

func printQuestion(status *interviewStatus) {
	if status.Question == nil {
		return
	}
	fmt.Printf("Question %d of %d [%s] %s\n",
		status.QuestionIndex+1, domain.TotalQuestions,
		status.Difficulty, status.Question.Category)
	fmt.Printf("Time: %s\n\n", timer.FormatSeconds(status.TimeRemaining))
	fmt.Println(status.Question.Text)
}
