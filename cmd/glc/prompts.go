package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/golives/glc/internal/types"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	grey   = color.New(color.FgHiBlack).SprintFunc()
	bgRed  = color.New(color.BgRed, color.FgWhite).SprintFunc()
)

var stdin = bufio.NewReader(os.Stdin)

func readLine() string {
	line, _ := stdin.ReadString('\n')
	return strings.TrimSpace(line)
}

// askPath prompts until the operator names a path that exists.
func askPath(question, defaultValue string) string {
	for {
		fmt.Printf("%s [%s]: ", question, defaultValue)
		answer := readLine()
		if answer == "" {
			answer = defaultValue
		}
		if _, err := os.Stat(answer); err == nil {
			return answer
		}
		fmt.Println(bgRed(fmt.Sprintf("Cannot find %s, please check the path", answer)))
	}
}

// askRequired prompts until the operator enters a non-empty answer.
func askRequired(question string) string {
	for {
		fmt.Printf("%s: ", question)
		if answer := readLine(); answer != "" {
			return answer
		}
		fmt.Println(yellow("Please enter a value :)"))
	}
}

// askEmail prompts until the operator enters an address in the configured
// domain.
func askEmail(question, domain string) string {
	suffix := "@" + domain
	for {
		fmt.Printf("%s: ", question)
		answer := readLine()
		if answer != "" && strings.HasSuffix(strings.ToLower(answer), suffix) {
			return answer
		}
		fmt.Println(yellow(fmt.Sprintf("Please enter your %s email :)", suffix)))
	}
}

// confirm asks a yes/no question, defaulting to no.
func confirm(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	answer := strings.ToLower(readLine())
	return answer == "y" || answer == "yes"
}

// interactivePrompter implements the engine's operator gates on stdin.
type interactivePrompter struct{}

func (interactivePrompter) ConfirmSample(rec *types.Record) (bool, error) {
	fmt.Println(green("\nSample formatted record (row #1) from your file:"))
	printRecord(rec)
	return confirm("\nPlease review the formatting above for row #1. Do you want to import this record?"), nil
}

func (interactivePrompter) AwaitReview(recordURL string) error {
	fmt.Println(grey(recordURL))
	fmt.Print("Press Enter to review the imported record at the URL above...")
	_ = readLine()
	return nil
}

func (interactivePrompter) ConfirmContinue(rec *types.Record) (bool, error) {
	fmt.Println("\nDo you want to import the remaining records?")
	fmt.Println(grey("IMPORTANT: only answer yes if the trial record imported cleanly and its catalog URL is not broken :)"))
	fmt.Printf("  yes: everything looks good, continue importing\n")
	fmt.Printf("  no:  abort and delete the 'ID: %d - %s' record\n", rec.ID, rec.Implementation)
	return confirm("Continue?"), nil
}

func printRecord(rec *types.Record) {
	fmt.Printf("  Id:             %d\n", rec.ID)
	fmt.Printf("  Implementation: %s\n", rec.Implementation)
	fmt.Printf("  Description:    %s\n", rec.Description)
	fmt.Printf("  Industry:       %s\n", rec.Industry)
	fmt.Printf("  Region:         %s\n", rec.Region)
	fmt.Printf("  Country:        %s\n", rec.Country)
	fmt.Printf("  Products:       %s\n", rec.Products)
	fmt.Printf("  KickOffDate:    %s\n", rec.KickOffDate)
	fmt.Printf("  GoLiveDate:     %s\n", rec.GoLiveDate)
	fmt.Printf("  Keywords:       %s\n", strings.Join(rec.Keywords, ", "))
	fmt.Printf("  CreatedBy:      %s <%s>\n", rec.CreatedBy, rec.CreatedByEmail)
	fmt.Printf("  ImageUrl:       %s\n", rec.ImageURL)
}
