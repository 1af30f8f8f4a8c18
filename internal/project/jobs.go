package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mverhaert/millcode/internal/model"
)

// JobFileExtension is the file extension for saved jobs.
const JobFileExtension = ".mcjob"

// SaveJob persists a job to the given path as indented JSON, creating
// missing parent directories.
func SaveJob(path string, job model.Job) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadJob reads a job from the given path.
func LoadJob(path string) (model.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Job{}, err
	}

	var job model.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return model.Job{}, fmt.Errorf("cannot parse job file: %w", err)
	}

	if job.Profile == "" {
		job.Profile = "Haas"
	}
	for i, op := range job.Operations {
		if op.Pocket == nil && op.Thread == nil && op.Drill == nil {
			return model.Job{}, fmt.Errorf("operation %d has no parameters", i+1)
		}
	}
	return job, nil
}

// SaveProgram writes generated program text to a file. The conventional
// extension is .nc but any path is accepted.
func SaveProgram(path, program string) error {
	if strings.TrimSpace(program) == "" {
		return errors.New("no program to save")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(program), 0644)
}
