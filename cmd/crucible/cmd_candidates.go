package main

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/crucible-hq/crucible/internal/domain"
)

// cmdCandidates manages the candidate roster
func cmdCandidates(args []string) error {
	if len(args) < 1 {
		fmt.Println(`Candidate commands:

  crucible candidates list [flags]           List candidates
      -search <text>    Filter by name, email, or phone
      -status <status>  Filter by status (pending, in-progress, completed)
      -sort <field>     Sort by score, name, or date
      -order <dir>      asc or desc (default desc)
  crucible candidates show <id>              Show one candidate
  crucible candidates add <resume-file>      Add a candidate from a resume
      -name, -email, -phone                  Fill in fields the parser missed
  crucible candidates delete <id> [id...]    Delete candidates
  crucible candidates stats                  Show roster counts`)
		return nil
	}

	if err := requireDaemon(); err != nil {
		return err
	}

	switch args[0] {
	case "list":
		return cmdCandidatesList(args[1:])
	case "show":
		if len(args) < 2 {
			return fmt.Errorf("candidate ID required")
		}
		return cmdCandidatesShow(args[1])
	case "add":
		return cmdCandidatesAdd(args[1:])
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("at least one candidate ID required")
		}
		return cmdCandidatesDelete(args[1:])
	case "stats":
		return cmdCandidatesStats()
	default:
		return fmt.Errorf("unknown candidates command: %s", args[0])
	}
}

func cmdCandidatesList(args []string) error {
	fs := flag.NewFlagSet("candidates list", flag.ContinueOnError)
	search := fs.String("search", "", "filter by name, email, or phone")
	status := fs.String("status", "", "filter by status")
	sortBy := fs.String("sort", "date", "sort by score, name, or date")
	order := fs.String("order", "desc", "asc or desc")
	if err := fs.Parse(args); err != nil {
		return err
	}

	params := url.Values{}
	params.Set("sort", *sortBy)
	params.Set("order", *order)
	if *search != "" {
		params.Set("search", *search)
	}
	if *status != "" {
		params.Set("status", *status)
	}

	var result struct {
		Candidates []domain.Candidate `json:"candidates"`
		Count      int                `json:"count"`
	}
	if err := apiGet("/v1/candidates?"+params.Encode(), &result); err != nil {
		return err
	}

	if result.Count == 0 {
		fmt.Println("No candidates found.")
		return nil
	}

	fmt.Printf("%-36s  %-24s  %-12s  %s\n", "ID", "NAME", "STATUS", "SCORE")
	for _, c := range result.Candidates {
		score := "-"
		if c.Status == domain.StatusCompleted {
			score = fmt.Sprintf("%d", c.FinalScore)
		}
		fmt.Printf("%-36s  %-24s  %-12s  %s\n", c.ID, truncate(c.Name, 24), c.Status, score)
	}
	fmt.Printf("\n%d candidate(s)\n", result.Count)
	return nil
}

func cmdCandidatesShow(id string) error {
	var c domain.Candidate
	if err := apiGet("/v1/candidates/"+id, &c); err != nil {
		return err
	}

	fmt.Printf("Candidate: %s\n\n", c.Name)
	fmt.Printf("ID:      %s\n", c.ID)
	fmt.Printf("Email:   %s\n", c.Email)
	if c.Phone != "" {
		fmt.Printf("Phone:   %s\n", c.Phone)
	}
	if len(c.Skills) > 0 {
		fmt.Printf("Skills:  %s\n", strings.Join(c.Skills, ", "))
	}
	if c.Filename != "" {
		fmt.Printf("Resume:  %s (%d bytes)\n", c.Filename, c.FileSize)
	}
	fmt.Printf("Status:  %s\n", c.Status)

	if c.Status == domain.StatusCompleted {
		fmt.Printf("\nFinal Score: %d/100\n", c.FinalScore)
		fmt.Printf("%s\n", c.FinalSummary)
		if len(c.Answers) > 0 {
			fmt.Println("\nAnswers:")
			for _, a := range c.Answers {
				fmt.Printf("  %d. [%s] %s\n", a.QuestionIndex+1, a.Difficulty, truncate(a.Question, 60))
				fmt.Printf("     answered in %ds of %ds, %d chars\n", a.TimeUsed, a.TimeLimit, len(a.Answer))
			}
		}
	}
	return nil
}

func cmdCandidatesAdd(args []string) error {
	fs := flag.NewFlagSet("candidates add", flag.ContinueOnError)
	name := fs.String("name", "", "candidate name, if the parser misses it")
	email := fs.String("email", "", "candidate email, if the parser misses it")
	phone := fs.String("phone", "", "candidate phone, if the parser misses it")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("resume file required")
	}

	path := fs.Arg(0)
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("read resume: %w", err)
	}

	var extraction struct {
		Name          string   `json:"name"`
		Email         string   `json:"email"`
		Phone         string   `json:"phone"`
		Skills        []string `json:"skills"`
		Filename      string   `json:"filename"`
		FileSize      int64    `json:"fileSize"`
		MissingFields []string `json:"missingFields"`
	}
	err = apiPost("POST", "/v1/intake", map[string]interface{}{
		"filename": filepath.Base(path),
		"fileSize": info.Size(),
	}, &extraction)
	if err != nil {
		return err
	}

	// Flags override or fill in the extracted fields.
	if *name != "" {
		extraction.Name = *name
	}
	if *email != "" {
		extraction.Email = *email
	}
	if *phone != "" {
		extraction.Phone = *phone
	}

	var missing []string
	if extraction.Name == "" {
		missing = append(missing, "-name")
	}
	if extraction.Email == "" {
		missing = append(missing, "-email")
	}
	if len(missing) > 0 {
		return fmt.Errorf("resume parser could not find every field; rerun with %s", strings.Join(missing, " and "))
	}

	var c domain.Candidate
	err = apiPost("POST", "/v1/candidates", map[string]interface{}{
		"name":     extraction.Name,
		"email":    extraction.Email,
		"phone":    extraction.Phone,
		"skills":   extraction.Skills,
		"filename": extraction.Filename,
		"fileSize": extraction.FileSize,
	}, &c)
	if err != nil {
		return err
	}

	fmt.Printf("Candidate added: %s <%s>\n", c.Name, c.Email)
	fmt.Printf("ID: %s\n", c.ID)
	fmt.Printf("\nRun 'crucible interview start %s' to begin the interview.\n", c.ID)
	return nil
}

func cmdCandidatesDelete(ids []string) error {
	if len(ids) == 1 {
		if err := apiPost("DELETE", "/v1/candidates/"+ids[0], nil, nil); err != nil {
			return err
		}
		fmt.Println("Candidate deleted.")
		return nil
	}

	var result struct {
		Requested int `json:"requested"`
		Deleted   int `json:"deleted"`
	}
	err := apiPost("POST", "/v1/candidates/bulk-delete", map[string]interface{}{"ids": ids}, &result)
	if err != nil {
		return err
	}
	fmt.Printf("Deleted %d of %d candidate(s).\n", result.Deleted, result.Requested)
	return nil
}

func cmdCandidatesStats() error {
	var stats struct {
		Total      int `json:"total"`
		Pending    int `json:"pending"`
		InProgress int `json:"inProgress"`
		Completed  int `json:"completed"`
	}
	if err := apiGet("/v1/candidates/stats", &stats); err != nil {
		return err
	}

	fmt.Printf("Total:       %d\n", stats.Total)
	fmt.Printf("Pending:     %d\n", stats.Pending)
	fmt.Printf("In Progress: %d\n", stats.InProgress)
	fmt.Printf("Completed:   %d\n", stats.Completed)
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
