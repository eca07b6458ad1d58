// Package job loads the input files of foldprep-af3: YAML job descriptions,
// molecule lists and MSA payloads.
package job

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"foldprep/internal/af3"
	"foldprep/internal/errs"
	"foldprep/internal/fileio"
)

// Job is one prediction job as written in a YAML file.
type Job struct {
	Name      string     `yaml:"name"`
	Proteins  []Protein  `yaml:"proteins"`
	Molecules []Molecule `yaml:"molecules"`

	dir string // relative MSA paths resolve against the job file
}

// Protein is one polymer chain description. A missing copies key means 1;
// an explicit value must be positive.
type Protein struct {
	Sequence        string `yaml:"sequence"`
	Copies          *int   `yaml:"copies"`
	UnpairedMSAFile string `yaml:"unpaired_msa_file"`
	PairedMSAFile   string `yaml:"paired_msa_file"`
}

// Molecule is an extra RNA, DNA, CCD or SMILES entity. Copies follows the
// Protein rule.
type Molecule struct {
	Type     string `yaml:"type"`
	Sequence string `yaml:"sequence"`
	Copies   *int   `yaml:"copies"`
}

// CopyCount is the number of chains, 1 when copies is unset.
func (p Protein) CopyCount() int { return copyCount(p.Copies) }

// CopyCount is the number of chains, 1 when copies is unset.
func (m Molecule) CopyCount() int { return copyCount(m.Copies) }

func copyCount(n *int) int {
	if n == nil {
		return 1
	}
	return *n
}

// Load reads path ("-" for stdin), expands ${VAR} and ${VAR:-default},
// applies defaults and validates the result.
func Load(path string) (Job, error) {
	data, err := fileio.ReadAll(path)
	if err != nil {
		return Job{}, fmt.Errorf("failed to read job %s: %w", path, err)
	}
	j, err := Parse(expandEnvVars(data))
	if err != nil {
		return Job{}, fmt.Errorf("%s: %w", path, err)
	}
	if path != "-" {
		j.dir = filepath.Dir(path)
	}
	if j.Name == "" {
		j.Name = stem(path)
	}
	if err := j.Validate(); err != nil {
		return Job{}, fmt.Errorf("%s: invalid job: %w", path, err)
	}
	return j, nil
}

// Parse decodes a job document and applies defaults. Unknown keys are errors.
func Parse(data []byte) (Job, error) {
	var j Job
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&j); err != nil && !errors.Is(err, io.EOF) {
		return Job{}, fmt.Errorf("failed to parse job: %w", err)
	}
	j.ApplyDefaults()
	return j, nil
}

// ApplyDefaults fills unset copy counts and normalises sequences. Explicit
// counts are left for Validate.
func (j *Job) ApplyDefaults() {
	j.Name = strings.TrimSpace(j.Name)
	for i := range j.Proteins {
		p := &j.Proteins[i]
		p.Sequence = strings.ToUpper(strings.Join(strings.Fields(p.Sequence), ""))
		if p.Copies == nil {
			p.Copies = intPtr(1)
		}
	}
	for i := range j.Molecules {
		m := &j.Molecules[i]
		m.Sequence = strings.TrimSpace(m.Sequence)
		if m.Copies == nil {
			m.Copies = intPtr(1)
		}
	}
}

func intPtr(n int) *int { return &n }

// Validate checks the job for correctness.
func (j *Job) Validate() error {
	if j.Name == "" {
		return errs.New(errs.InvalidInput, "name", "name is required")
	}
	if len(j.Proteins)+len(j.Molecules) == 0 {
		return errs.New(errs.InvalidInput, j.Name, "job has no proteins or molecules")
	}
	for i, p := range j.Proteins {
		if p.Sequence == "" {
			return errs.New(errs.InvalidInput, fmt.Sprintf("proteins.%d", i), "sequence is required")
		}
		if n := p.CopyCount(); n < 1 {
			return errs.New(errs.InvalidCopyCount, fmt.Sprintf("proteins.%d", i), "copies must be positive, got %d", n)
		}
	}
	for i, m := range j.Molecules {
		if m.Sequence == "" {
			return errs.New(errs.InvalidInput, fmt.Sprintf("molecules.%d", i), "sequence is required")
		}
		if _, err := af3.NewMolecule(m.Type, m.Sequence, m.CopyCount()); err != nil {
			return fmt.Errorf("molecules.%d: %w", i, err)
		}
	}
	return nil
}

// Request merges repeated protein sequences (summing copies), reads the MSA
// files and returns the assembler input. Proteins without MSA files get the
// empty-string "no search" sentinel.
func (j *Job) Request() (af3.Request, error) {
	req := af3.Request{Name: j.Name}
	index := map[string]int{}
	var unpairedFiles, pairedFiles []string
	for i, p := range j.Proteins {
		if k, ok := index[p.Sequence]; ok {
			if (p.UnpairedMSAFile != "" && p.UnpairedMSAFile != unpairedFiles[k]) ||
				(p.PairedMSAFile != "" && p.PairedMSAFile != pairedFiles[k]) {
				return af3.Request{}, errs.New(errs.InvalidInput, fmt.Sprintf("proteins.%d", i), "repeated sequence names different MSA files")
			}
			req.Copies[k] += p.CopyCount()
			continue
		}
		index[p.Sequence] = len(req.Sequences)
		req.Sequences = append(req.Sequences, p.Sequence)
		req.Copies = append(req.Copies, p.CopyCount())
		unpairedFiles = append(unpairedFiles, p.UnpairedMSAFile)
		pairedFiles = append(pairedFiles, p.PairedMSAFile)
	}
	var err error
	if req.Unpaired, err = j.readMSAs(unpairedFiles); err != nil {
		return af3.Request{}, err
	}
	if req.Paired, err = j.readMSAs(pairedFiles); err != nil {
		return af3.Request{}, err
	}
	for _, m := range j.Molecules {
		mol, err := af3.NewMolecule(m.Type, m.Sequence, m.CopyCount())
		if err != nil {
			return af3.Request{}, err
		}
		req.Extras = append(req.Extras, mol)
	}
	return req, nil
}

func (j *Job) readMSAs(files []string) ([]string, error) {
	out := make([]string, len(files))
	for i, f := range files {
		if f == "" {
			continue
		}
		if !filepath.IsAbs(f) && j.dir != "" {
			f = filepath.Join(j.dir, f)
		}
		data, err := fileio.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("read MSA: %w", err)
		}
		out[i] = string(data)
	}
	return out, nil
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}

func stem(path string) string {
	if path == "-" {
		return ""
	}
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base
}
