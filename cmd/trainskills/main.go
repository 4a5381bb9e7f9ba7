package main

// Train the skill NER model loaded by the prose analyzer:
//   go run ./cmd/trainskills -out ./models/skills -skills skills.txt
//
// The skills file holds one skill per line; blank lines and # comments are skipped.

import (
	"bufio"
	"flag"
	"log"
	"os"
	"strings"

	"resume-parser/internal/nlp"
)

func main() {
	out := flag.String("out", "", "output model directory (SKILL_MODEL_DIR)")
	skillsFile := flag.String("skills", "", "file with one skill per line")
	inline := flag.String("list", "", "comma-separated skills, added to -skills")
	flag.Parse()

	if strings.TrimSpace(*out) == "" {
		log.Fatalf("-out is required")
	}

	var skills []string
	if *skillsFile != "" {
		fromFile, err := readSkills(*skillsFile)
		if err != nil {
			log.Fatalf("read skills: %v", err)
		}
		skills = append(skills, fromFile...)
	}
	for _, s := range strings.Split(*inline, ",") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}

	n, err := nlp.TrainSkillModel(*out, skills, nil)
	if err != nil {
		log.Fatalf("train: %v", err)
	}
	log.Printf("trained skill model on %d examples (%d skills) -> %s", n, len(skills), *out)
}

func readSkills(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}
