package application

import (
	"path"
	"strings"

	"github.com/ericfisherdev/ghbots/internal/domain/model"
)

const (
	openAPISuffix = ".openapi.yml"
	gitlabCIFile  = ".gitlab-ci.yml"
)

// extensionLabels maps a file extension to the label it triggers.
var extensionLabels = map[string]string{
	".sql":  model.LabelSQL,
	".java": model.LabelJava,
	".py":   model.LabelPython,
}

// ClassifyLabels derives labels from a list of changed file paths.
//
//   - "<dir>/<name>.openapi.yml" adds "api:<name>" and "api"
//   - a root-level ".gitlab-ci.yml" adds "ci"
//   - the extensions .sql, .java and .py add "sql", "java" and "python"
func ClassifyLabels(files []string) model.LabelSet {
	labels := model.NewLabelSet()
	extensions := make(map[string]bool)

	for _, file := range files {
		extensions[splitExt(file)] = true

		if strings.HasSuffix(file, openAPISuffix) {
			name, _, _ := strings.Cut(path.Base(file), ".")
			labels.Add(model.LabelAPIPrefix + name)
		}
		if file == gitlabCIFile {
			labels.Add(model.LabelCI)
		}
	}

	for _, l := range labels.Sorted() {
		if strings.HasPrefix(l, model.LabelAPIPrefix) {
			labels.Add(model.LabelAPI)
			break
		}
	}

	for ext, label := range extensionLabels {
		if extensions[ext] {
			labels.Add(label)
		}
	}

	return labels
}

// MergeLabels returns computed plus every existing label the bot does not own.
func MergeLabels(computed model.LabelSet, existing []string) model.LabelSet {
	merged := computed.Union(nil)
	for _, name := range existing {
		if model.IsBotOwned(name) {
			continue
		}
		merged.Add(name)
	}
	return merged
}

// splitExt returns the extension of the last path element. Leading dots of
// the file name do not start an extension, so ".sql" has none.
func splitExt(p string) string {
	name := strings.TrimLeft(path.Base(p), ".")
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	return name[i:]
}
