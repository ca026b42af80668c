package main

import "fmt"

// cmdQuestions inspects the question bank
func cmdQuestions(args []string) error {
	if len(args) < 1 || args[0] != "stats" {
		fmt.Println(`Question bank commands:

  crucible questions stats   Show question counts per difficulty tier`)
		return nil
	}

	if err := requireDaemon(); err != nil {
		return err
	}

	var stats struct {
		Easy   int `json:"easy"`
		Medium int `json:"medium"`
		Hard   int `json:"hard"`
		Total  int `json:"total"`
	}
	if err := apiGet("/v1/questions/stats", &stats); err != nil {
		return err
	}

	fmt.Printf("Easy:   %d\n", stats.Easy)
	fmt.Printf("Medium: %d\n", stats.Medium)
	fmt.Printf("Hard:   %d\n", stats.Hard)
	fmt.Printf("Total:  %d\n", stats.Total)
	return nil
}
