package repository

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/viant/afs"
	"golang.org/x/mod/modfile"
)

// marker file -> project type, checked in order from the innermost
// directory upward; the first marker found wins.
var projectMarkers = []struct {
	file string
	kind string
}{
	{"go.mod", "go"},
	{"pom.xml", "java"},
	{"build.gradle", "java"},
	{"package.json", "javascript"},
	{"composer.json", "php"},
	{"Cargo.toml", "rust"},
	{"pyproject.toml", "python"},
	{"requirements.txt", "python"},
	{"Gemfile", "ruby"},
	{".git", "git"},
}

// Detector locates project and repository roots above a given file.
type Detector struct {
	fs afs.Service
}

// NewDetector returns a Detector that reads go.mod through fs (falling back
// to the local filesystem). Marker files, .git directories and the other
// project files are always looked up on the local filesystem.
func NewDetector(fs afs.Service) *Detector {
	return &Detector{fs: fs}
}

// DetectProject walks up from filePath looking for a project marker. If
// none is found and baseURL is non-empty, baseURL[0] is used as the
// project root instead, with Type left as "unknown".
func (d *Detector) DetectProject(filePath string, baseURL ...string) (*Project, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}
	startDir, err := startDirOf(absPath)
	if err != nil {
		return nil, err
	}

	rootPath, kind := findProjectRoot(startDir)

	info := &Project{Type: "unknown", RootPath: absPath}
	switch {
	case rootPath == "" && len(baseURL) > 0 && baseURL[0] != "":
		info.RootPath = baseURL[0]
	case rootPath != "":
		info.RootPath = rootPath
		info.Type = kind
	}

	relPath, err := filepath.Rel(info.RootPath, absPath)
	if err != nil {
		relPath = filepath.Base(absPath)
	}
	info.RelativePath = filepath.ToSlash(relPath)

	if kind != "" {
		info.Name, info.GoModule = d.extractProjectName(info.RootPath, kind)
	}
	return info, nil
}

// DetectRepository identifies the git repository (if any) containing
// filePath, falling back to DetectProject's result when there is none.
func (d *Detector) DetectRepository(filePath string) (*Repository, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}
	startDir, err := startDirOf(absPath)
	if err != nil {
		return nil, err
	}

	if gitRoot := findGitRoot(startDir); gitRoot != "" {
		repo := &Repository{Kind: "git", Root: gitRoot, Origin: extractGitOrigin(gitRoot)}
		if info, err := d.DetectProject(filePath); err == nil {
			repo.Info = info
		}
		return repo, nil
	}

	info, err := d.DetectProject(filePath)
	if err != nil {
		return nil, err
	}
	return &Repository{Kind: info.Type, Root: info.RootPath, Info: info}, nil
}

func startDirOf(absPath string) (string, error) {
	fi, err := os.Stat(absPath)
	if err != nil {
		return "", err
	}
	if fi.IsDir() {
		return absPath, nil
	}
	return filepath.Dir(absPath), nil
}

func findProjectRoot(startDir string) (string, string) {
	for dir := startDir; ; {
		for _, m := range projectMarkers {
			if _, err := os.Stat(filepath.Join(dir, m.file)); err == nil {
				return dir, m.kind
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ""
		}
		dir = parent
	}
}

func findGitRoot(startDir string) string {
	homeDir := os.Getenv("HOME")
	for dir := startDir; ; {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir || parent == homeDir {
			return ""
		}
		dir = parent
	}
}

func extractGitOrigin(gitRoot string) string {
	url, _ := scanGitConfigForOriginURL(filepath.Join(gitRoot, ".git", "config"))
	return url
}

func scanGitConfigForOriginURL(configPath string) (string, bool) {
	file, err := os.Open(configPath)
	if err != nil {
		return "", false
	}
	defer file.Close()

	inOrigin := false
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.Contains(line, `[remote "origin"]`):
			inOrigin = true
		case inOrigin && strings.HasPrefix(line, "url = "):
			return strings.TrimPrefix(line, "url = "), true
		case inOrigin && strings.HasPrefix(line, "["):
			inOrigin = false
		}
	}
	return "", false
}

// extractProjectName dispatches on project kind to pull a human-readable
// name (and, for go, the parsed module) from the marker file; it falls
// back to the root directory's base name when the marker can't be parsed.
func (d *Detector) extractProjectName(rootPath, kind string) (string, *modfile.Module) {
	switch kind {
	case "go":
		return d.extractGoModule(filepath.Join(rootPath, "go.mod"))
	case "javascript":
		if name := extractByPattern(rootPath, "package.json", `"name"\s*:\s*"([^"]+)"`); name != "" {
			return name, nil
		}
		return filepath.Base(rootPath), nil
	case "java":
		if name := extractByPattern(rootPath, "pom.xml", `<artifactId>([^<]+)</artifactId>`); name != "" {
			return name, nil
		}
		if name := extractByPattern(rootPath, "build.gradle", `(?:rootProject|project)\.name\s*=\s*['"]([^'"]+)['"]`); name != "" {
			return name, nil
		}
		return filepath.Base(rootPath), nil
	case "python":
		if name := extractByPattern(rootPath, "pyproject.toml", `(?:tool\.poetry|project)\.name\s*=\s*["']([^"']+)["']`); name != "" {
			return name, nil
		}
		if name := extractByPattern(rootPath, "setup.py", `name\s*=\s*["']([^"']+)["']`); name != "" {
			return name, nil
		}
		return filepath.Base(rootPath), nil
	case "rust":
		if name := extractByPattern(rootPath, "Cargo.toml", `(?s)\[package\].*?name\s*=\s*["']([^"']+)["']`); name != "" {
			return name, nil
		}
		return filepath.Base(rootPath), nil
	case "git":
		if url, ok := scanGitConfigForOriginURL(filepath.Join(rootPath, ".git", "config")); ok {
			url = strings.TrimSuffix(url, ".git")
			parts := strings.Split(url, "/")
			return parts[len(parts)-1], nil
		}
		return filepath.Base(rootPath), nil
	default:
		return filepath.Base(rootPath), nil
	}
}

func (d *Detector) extractGoModule(goModPath string) (string, *modfile.Module) {
	content, err := d.fs.DownloadWithURL(context.Background(), goModPath)
	if err != nil || len(content) == 0 {
		content, err = os.ReadFile(goModPath)
	}
	if err != nil || len(content) == 0 {
		return filepath.Base(filepath.Dir(goModPath)), nil
	}
	if mod, err := modfile.Parse(goModPath, content, nil); err == nil && mod != nil {
		return mod.Module.Mod.Path, mod.Module
	}
	return filepath.Base(filepath.Dir(goModPath)), nil
}

func extractByPattern(rootPath, file, pattern string) string {
	data, err := os.ReadFile(filepath.Join(rootPath, file))
	if err != nil {
		return ""
	}
	matches := regexp.MustCompile(pattern).FindSubmatch(data)
	if len(matches) < 2 {
		return ""
	}
	return string(matches[1])
}
