package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"internship-navigator/internal/dashboard"
	"internship-navigator/internal/gateway"
	"internship-navigator/internal/onboarding"
	"internship-navigator/internal/quiz"
	"internship-navigator/internal/session"
)

func main() {
	apiURL := os.Getenv("NAVIGATOR_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}
	stateDir := os.Getenv("NAVIGATOR_STATE_DIR")
	if stateDir == "" {
		home, _ := os.UserHomeDir()
		stateDir = filepath.Join(home, ".navigator")
	}

	sess := session.NewStore(stateDir)
	if err := sess.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load session: %v\n", err)
		os.Exit(1)
	}

	client := gateway.New(apiURL)
	if tok, ok := sess.Token(); ok {
		client.SetToken(tok)
	}

	profileSync := dashboard.NewSync(client, sess, func(v uint64) {
		fmt.Printf("(profile updated, v%d)\n", v)
	})
	orch := dashboard.NewOrchestrator(client, sess, profileSync)

	app := &shell{
		in:     bufio.NewScanner(os.Stdin),
		client: client,
		sess:   sess,
		orch:   orch,
	}
	app.run()
}

type shell struct {
	in     *bufio.Scanner
	client *gateway.Client
	sess   *session.Store
	orch   *dashboard.Orchestrator
}

func (s *shell) run() {
	ctx := context.Background()

	if _, ok := s.sess.Token(); !ok {
		if !s.login(ctx) {
			return
		}
	}

	s.orch.Mount()
	for s.orch.Active() == dashboard.OverlayOnboarding {
		s.runOnboarding()
	}

	for {
		fmt.Print("\n[l]istings  [q]uiz  [r]esume analyzer  [o]ut (logout)  [x] quit > ")
		switch s.readLine() {
		case "l":
			s.listings(ctx)
		case "q":
			if s.orch.Open(dashboard.OverlayQuiz) {
				s.runQuiz()
			}
		case "r":
			if s.orch.Open(dashboard.OverlayResumeAnalyzer) {
				s.runAnalyzer()
			}
		case "o":
			if err := s.orch.Logout(); err != nil {
				fmt.Printf("logout failed: %v\n", err)
			}
			if !s.login(ctx) {
				return
			}
			s.orch.Mount()
			for s.orch.Active() == dashboard.OverlayOnboarding {
				s.runOnboarding()
			}
		case "x":
			return
		}
	}
}

func (s *shell) login(ctx context.Context) bool {
	for {
		fmt.Print("email: ")
		email := s.readLine()
		fmt.Print("password: ")
		password := s.readLine()
		if email == "" {
			return false
		}

		res, err := s.client.Authenticate(ctx, email, password)
		if err != nil {
			fmt.Printf("login failed: %v\n", err)
			continue
		}
		if err := s.sess.SetIdentity(res.Token, email, res.Name, res.ProfileComplete, res.QuizTaken); err != nil {
			fmt.Printf("failed to save session: %v\n", err)
		}
		fmt.Printf("welcome, %s\n", res.Name)
		return true
	}
}

func (s *shell) listings(ctx context.Context) {
	postings, err := s.client.ListInternships(ctx)
	if err != nil {
		fmt.Printf("failed to load internships: %v\n", err)
		return
	}
	for _, p := range postings {
		fmt.Printf("%3d%%  %-35s %-20s %s\n", p.MatchScore, p.Title, p.Company, strings.Join(p.FitTags, ", "))
	}
}

func (s *shell) runOnboarding() {
	for s.orch.Active() == dashboard.OverlayOnboarding {
		switch s.orch.OnboardingStep() {
		case onboarding.StepEducation:
			fmt.Println("\n-- profile setup: education --")
			s.orch.SetEducation(s.pick("highest education", onboarding.EducationOptions))
			s.orch.SetFieldOfStudy(s.pick("field of study", onboarding.FieldOfStudyOptions))
		case onboarding.StepResume:
			fmt.Print("\n-- resume (optional); path to pdf/docx or enter to skip ahead: ")
			if path := s.readLine(); path != "" {
				s.scan(path)
			}
		case onboarding.StepSkills:
			fmt.Printf("\n-- skills (currently %q): ", s.orch.OnboardingSkills())
			if v := s.readLine(); v != "" {
				s.orch.SetSkills(v)
			}
			if err := s.orch.SubmitOnboarding(); err != nil {
				fmt.Printf("cannot submit: %v\n", err)
			} else {
				s.orch.Wait()
				if msg := s.orch.OnboardingSubmitErr(); msg != "" {
					fmt.Printf("submit failed: %s\n", msg)
				}
				continue
			}
		}

		fmt.Print("[n]ext [b]ack [s]kip setup > ")
		switch s.readLine() {
		case "n":
			if err := s.orch.NextStep(); err != nil {
				fmt.Println("fill in the required fields first")
			}
		case "b":
			s.orch.BackStep()
		case "s":
			s.orch.SkipOnboarding()
		}
	}
}

func (s *shell) scan(path string) {
	f, err := os.Open(path)
	if err != nil {
		fmt.Printf("cannot open %s: %v\n", path, err)
		return
	}
	defer f.Close()
	if err := s.orch.ScanResume(filepath.Base(path), f); err != nil {
		fmt.Printf("scan rejected: %v\n", err)
		return
	}
	s.orch.Wait()
	if msg := s.orch.OnboardingScanErr(); msg != "" {
		fmt.Printf("scan failed: %s\n", msg)
		return
	}
	fmt.Printf("extracted skills: %s\n", s.orch.OnboardingSkills())
}

func (s *shell) runQuiz() {
	for s.orch.Active() == dashboard.OverlayQuiz {
		idx := s.orch.QuizIndex()
		if idx < 0 {
			return
		}
		q := quiz.Questions[idx]
		fmt.Printf("\nQ%d/%d: %s\n", idx+1, len(quiz.Questions), q.Prompt)
		for i, opt := range q.Options {
			fmt.Printf("  %d) %s\n", i+1, opt.Text)
		}
		fmt.Print("answer number, [b]ack, [f]inish, [c]ancel > ")
		input := s.readLine()
		switch input {
		case "b":
			s.orch.BackQuestion()
		case "c":
			s.orch.Close()
		case "f":
			if err := s.orch.SubmitQuiz(); err != nil {
				fmt.Printf("cannot submit: %v\n", err)
				continue
			}
			s.orch.Wait()
			if msg := s.orch.QuizSubmitErr(); msg != "" {
				fmt.Printf("submit failed: %s\n", msg)
			}
		default:
			n, err := strconv.Atoi(input)
			if err != nil || n < 1 || n > len(q.Options) {
				continue
			}
			if err := s.orch.SelectQuizAnswer(q.Options[n-1].Tag); err == nil {
				s.orch.NextQuestion()
			}
		}
	}
}

func (s *shell) runAnalyzer() {
	defer s.orch.Close()

	fmt.Print("\npath to pdf/docx resume: ")
	path := s.readLine()
	if path == "" {
		return
	}
	f, err := os.Open(path)
	if err != nil {
		fmt.Printf("cannot open %s: %v\n", path, err)
		return
	}
	defer f.Close()

	if err := s.orch.AnalyzeResume(filepath.Base(path), f); err != nil {
		fmt.Printf("analysis rejected: %v\n", err)
		return
	}
	s.orch.Wait()
	if msg := s.orch.AnalyzerErr(); msg != "" {
		fmt.Printf("analysis failed: %s\n", msg)
		return
	}
	if res, ok := s.orch.Extraction(); ok {
		fmt.Printf("name: %s\nskills: %s\n", res.Name, strings.Join(res.Skills, ", "))
	}
}

func (s *shell) pick(label string, options []string) string {
	for {
		fmt.Printf("%s:\n", label)
		for i, opt := range options {
			fmt.Printf("  %d) %s\n", i+1, opt)
		}
		fmt.Print("> ")
		n, err := strconv.Atoi(s.readLine())
		if err == nil && n >= 1 && n <= len(options) {
			return options[n-1]
		}
	}
}

func (s *shell) readLine() string {
	if !s.in.Scan() {
		return ""
	}
	return strings.TrimSpace(s.in.Text())
}
