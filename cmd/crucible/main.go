package main

import (
	"fmt"
	"os"
)

// Version is set at build time via ldflags
var Version = "dev"

const (
	daemonAddr = "http://127.0.0.1:7433"
	pidFile    = "crucibled.pid"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "start":
		err = cmdStart()
	case "stop":
		err = cmdStop()
	case "status":
		err = cmdStatus()
	case "logs":
		err = cmdLogs()
	case "interview":
		err = cmdInterview(os.Args[2:])
	case "candidates":
		err = cmdCandidates(os.Args[2:])
	case "questions":
		err = cmdQuestions(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Printf("crucible %s\n", Version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Crucible - Timed Mock Interviews for Frontend Candidates

Usage:
  crucible <command> [arguments]

Daemon Commands:
  start                Start the crucible daemon
  stop                 Stop the crucible daemon
  status               Show daemon status
  logs                 View daemon logs

Interview Commands:
  interview start <candidate-id>   Start an interview for a candidate
  interview status                 Show the current interview state
  interview answer <text>          Submit an answer to the current question
  interview pause                  Pause the question clock
  interview resume-timer           Resume the question clock
  interview abandon                Discard the current interview
  interview resumable              Check for an interrupted interview
  interview resume                 Continue an interrupted interview

Candidate Commands:
  candidates list      List candidates (flags: -search, -status, -sort, -order)
  candidates show      Show one candidate with interview results
  candidates add       Add a candidate from a resume file
  candidates delete    Delete one or more candidates
  candidates stats     Show roster counts by status

Question Bank Commands:
  questions stats      Show question counts per difficulty tier

Other:
  help                 Show this help message
  version              Show version information

Examples:
  crucible start                        # Start daemon
  crucible candidates add resume.pdf    # Upload a resume
  crucible interview start <id>         # Begin the interview
  crucible interview answer "..."       # Answer the current question`)
}
