package extract

import (
	"regexp"
	"strings"
)

// Fields holds identity and skill data pulled from resume text.
type Fields struct {
	Name   string
	Email  string
	Phone  string
	Skills []string
}

// knownSkills is the dictionary matched against resume text. Matching is
// case-insensitive; the canonical casing below is what gets reported.
var knownSkills = []string{
	"Python", "Java", "C++", "JavaScript", "React", "Node.js", "SQL", "Git",
	"Docker", "Kubernetes", "AWS", "Azure", "GCP", "TensorFlow", "PyTorch",
	"Scikit-learn", "Pandas", "Numpy", "Machine Learning", "Deep Learning",
	"Data Analysis", "Project Management", "Agile", "Scrum", "Team Leadership",
}

var (
	emailRe = regexp.MustCompile(`[\w.+-]+@[\w.-]+\.\w+`)
	phoneRe = regexp.MustCompile(`(\+?\d{1,3}[\s-]?)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`)
)

// ParseFields extracts name, contact info and known skills from resume text.
func ParseFields(text string) Fields {
	return Fields{
		Name:   guessName(text),
		Email:  emailRe.FindString(text),
		Phone:  phoneRe.FindString(text),
		Skills: MatchSkills(text),
	}
}

// MatchSkills returns every dictionary skill present in text, preserving
// dictionary order so repeated scans produce stable output.
func MatchSkills(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, skill := range knownSkills {
		if containsToken(lower, strings.ToLower(skill)) {
			found = append(found, skill)
		}
	}
	return found
}

// containsToken reports whether needle occurs in haystack on a word boundary,
// so "java" does not match inside "javascript".
func containsToken(haystack, needle string) bool {
	idx := 0
	for {
		i := strings.Index(haystack[idx:], needle)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(needle)
		if boundaryBefore(haystack, start) && boundaryAfter(haystack, end) {
			return true
		}
		idx = start + 1
	}
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	return !isWordByte(s[i-1])
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	return !isWordByte(s[i])
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// guessName takes the first line that looks like a personal name: two to four
// capitalized words, no digits, before any contact details appear.
func guessName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if emailRe.MatchString(line) || phoneRe.MatchString(line) {
			continue
		}
		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 4 {
			continue
		}
		if allCapitalizedWords(words) {
			return strings.Join(words, " ")
		}
	}
	return ""
}

func allCapitalizedWords(words []string) bool {
	for _, w := range words {
		r := rune(w[0])
		if r < 'A' || r > 'Z' {
			return false
		}
		for _, c := range w {
			if c >= '0' && c <= '9' {
				return false
			}
		}
	}
	return true
}
