package artifact

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/thesportspage/backend/internal/domain/report"
	"github.com/thesportspage/backend/internal/platform/logging"
)

// json keeps non-ASCII text (player and club names) readable in the artifact.
var json = sonic.Config{EscapeHTML: false}.Froze()

// Writer persists one run document to a fixed path. The write is atomic: the
// document lands in a temp file first and replaces the previous artifact via
// rename, so the consumer never observes a half-written file.
type Writer struct {
	path   string
	logger *logging.Logger
}

func NewWriter(path string, logger *logging.Logger) *Writer {
	if logger == nil {
		logger = logging.Default()
	}
	return &Writer{path: path, logger: logger}
}

// Write serializes and persists the document. Any failure here is fatal to
// the run; the artifact is its only product.
func (w *Writer) Write(doc report.RunDocument) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := encodeDocument(buf, doc); err != nil {
		return crerr.Wrap(err, "encode run document")
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return crerr.Wrap(err, "create artifact directory")
	}

	tmp, err := os.CreateTemp(dir, ".sports_data-*.tmp")
	if err != nil {
		return crerr.Wrap(err, "create temp artifact")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.B); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return crerr.Wrap(err, "write temp artifact")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return crerr.Wrap(err, "close temp artifact")
	}
	if err := os.Rename(tmpName, w.path); err != nil {
		os.Remove(tmpName)
		return crerr.Wrap(err, "replace artifact")
	}

	w.logger.Info("artifact written", "path", w.path, "bytes", len(buf.B))
	return nil
}

// encodeDocument emits the document with the leagues object in declared
// order. Serializing the map directly would surrender that ordering to map
// iteration, so the leagues are spliced in one by one.
func encodeDocument(buf *bytebufferpool.ByteBuffer, doc report.RunDocument) error {
	head, err := json.MarshalIndent(struct {
		GeneratedAt string `json:"generated_at"`
		DateLabel   string `json:"date_label"`
	}{
		GeneratedAt: doc.GeneratedAt.Format(time.RFC3339),
		DateLabel:   doc.DateLabel,
	}, "", "  ")
	if err != nil {
		return err
	}

	// Drop the closing "\n}" so the leagues object can be appended.
	head = bytes.TrimSuffix(head, []byte("\n}"))
	buf.Write(head)
	buf.WriteString(",\n  \"leagues\": {")

	order := doc.Order
	if len(order) == 0 {
		order = sortedKeys(doc.Leagues)
	}

	first := true
	for _, code := range order {
		league, ok := doc.Leagues[code]
		if !ok {
			continue
		}
		body, err := json.MarshalIndent(league, "    ", "  ")
		if err != nil {
			return err
		}
		if !first {
			buf.WriteString(",")
		}
		first = false

		key, err := json.Marshal(code)
		if err != nil {
			return err
		}
		buf.WriteString("\n    ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(body)
	}

	buf.WriteString("\n  }\n}\n")
	return nil
}

func sortedKeys(leagues map[string]report.LeagueReport) []string {
	out := make([]string, 0, len(leagues))
	for code := range leagues {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}
