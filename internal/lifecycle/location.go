package lifecycle

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	gherkin "github.com/cucumber/gherkin/go/v26"
	messages "github.com/cucumber/messages/go/v21"
)

type featureIndex struct {
	name  string
	lines map[string][]scenarioLine // scenario name -> candidates in source order
}

type scenarioLine struct {
	line int
	// rowOffset is the example row's node id minus the outline's node id, 0 for a plain scenario.
	// Node ids are sequential within a document, so the offset does not depend on where
	// the id generator started.
	rowOffset int
}

// Locations resolves a scenario to its source line. Outline scenarios map to the
// line of their example row.
type Locations struct {
	mu       sync.RWMutex
	features map[string]*featureIndex // uri -> index
}

func NewLocations() *Locations {
	return &Locations{features: make(map[string]*featureIndex)}
}

// Load indexes every .feature file under paths. A path may be a file or a directory,
// and may carry a :line suffix which is ignored.
func (l *Locations) Load(paths ...string) error {
	for _, path := range paths {
		path = stripLine(path)
		err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || filepath.Ext(p) != ".feature" {
				return nil
			}
			return l.LoadFile(p)
		})
		if err != nil {
			return fmt.Errorf("failed to index features in %s: %w", path, err)
		}
	}
	return nil
}

// LoadFile parses one feature file.
func (l *Locations) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := gherkin.ParseGherkinDocument(f, (&messages.Incrementing{}).NewId)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	idx := &featureIndex{lines: make(map[string][]scenarioLine)}
	if doc.Feature != nil {
		idx.name = doc.Feature.Name
		for _, child := range doc.Feature.Children {
			switch {
			case child.Scenario != nil:
				idx.addScenario(child.Scenario)
			case child.Rule != nil:
				for _, rc := range child.Rule.Children {
					if rc.Scenario != nil {
						idx.addScenario(rc.Scenario)
					}
				}
			}
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.features[normalize(path)] = idx
	return nil
}

func (idx *featureIndex) addScenario(s *messages.Scenario) {
	if len(s.Examples) == 0 {
		idx.lines[s.Name] = append(idx.lines[s.Name], scenarioLine{line: int(s.Location.Line)})
		return
	}
	scenarioID, _ := strconv.Atoi(s.Id)
	for _, ex := range s.Examples {
		if ex.TableHeader == nil {
			continue
		}
		for _, row := range ex.TableBody {
			name := s.Name
			for i, cell := range row.Cells {
				if i < len(ex.TableHeader.Cells) {
					name = strings.ReplaceAll(name, "<"+ex.TableHeader.Cells[i].Value+">", cell.Value)
				}
			}
			rowID, _ := strconv.Atoi(row.Id)
			idx.lines[name] = append(idx.lines[name], scenarioLine{
				line:      int(row.Location.Line),
				rowOffset: rowID - scenarioID,
			})
		}
	}
}

// Feature returns the name of the feature at uri.
func (l *Locations) Feature(uri string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if idx, ok := l.features[normalize(uri)]; ok {
		return idx.name
	}
	return ""
}

// Line returns the source line of the scenario called name in uri, or 0 when unknown.
// astNodeIDs are the pickle's node ids; for an outline row they pick the row among
// rows that expand to the same name. Otherwise scenarios sharing a name resolve to the
// first of them.
func (l *Locations) Line(uri, name string, astNodeIDs ...string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	idx, ok := l.features[normalize(uri)]
	if !ok {
		return 0
	}
	candidates := idx.lines[name]
	if len(candidates) == 0 {
		return 0
	}
	if offset, ok := rowOffset(astNodeIDs); ok {
		for _, c := range candidates {
			if c.rowOffset == offset {
				return c.line
			}
		}
	}
	return candidates[0].line
}

// rowOffset returns the last node id minus the first, the row offset of an outline pickle.
func rowOffset(ids []string) (int, bool) {
	if len(ids) < 2 {
		return 0, false
	}
	first, err := strconv.Atoi(ids[0])
	if err != nil {
		return 0, false
	}
	last, err := strconv.Atoi(ids[len(ids)-1])
	if err != nil {
		return 0, false
	}
	return last - first, true
}

func normalize(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}

func stripLine(path string) string {
	if i := strings.LastIndex(path, ":"); i > 0 && !strings.ContainsAny(path[i+1:], `/\`) {
		if _, err := fmt.Sscanf(path[i+1:], "%d", new(int)); err == nil {
			return path[:i]
		}
	}
	return path
}
