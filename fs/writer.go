// Package fs stores clips as files.
package fs

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/clipprune"
)

// Extension returns the file extension for clips of format.
func Extension(format clipprune.Format) string {
	if format == clipprune.FormatMarkdown {
		return ".md"
	}
	return ".html"
}

// URLToPath converts an article URL to a relative file path under the host.
// Example: https://www.example.jp/news/2024/0101.html → www.example.jp/news/2024/0101.md
// File URLs go to LocalDir: file:///tmp/page.html → local/page.md
func URLToPath(rawURL string, format clipprune.Format) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", clipprune.WrapError(clipprune.EINVALID, err, "invalid clip URL %q", rawURL)
	}
	ext := Extension(format)
	if u.Scheme == "file" {
		return localPath(u.Path, ext)
	}
	if u.Host == "" {
		return "", clipprune.Errorf(clipprune.EINVALID, "clip URL %q has no host", rawURL)
	}

	p := strings.TrimPrefix(path.Clean("/"+u.Path), "/")
	if p == "" || strings.HasSuffix(u.Path, "/") {
		return path.Join(u.Host, p, "index"+ext), nil
	}
	switch path.Ext(p) {
	case ".html", ".htm", ".php", ".aspx", ".cgi":
		p = strings.TrimSuffix(p, path.Ext(p))
	}
	if u.RawQuery != "" {
		p += "_" + strings.NewReplacer("=", "-", "&", "_", "/", "-").Replace(u.RawQuery)
	}
	return path.Join(u.Host, p+ext), nil
}

// LocalDir holds clips of pages read from files, which have no host.
const LocalDir = "local"

// localPath maps a file URL path to LocalDir/<basename>.
func localPath(p, ext string) (string, error) {
	base := path.Base(path.Clean("/" + p))
	if base == "/" || base == "." {
		return "", clipprune.Errorf(clipprune.EINVALID, "file URL %q names no file", p)
	}
	switch path.Ext(base) {
	case ".html", ".htm", ".xhtml":
		base = strings.TrimSuffix(base, path.Ext(base))
	}
	return path.Join(LocalDir, base+ext), nil
}

// FormatClip renders a clip with its metadata header: YAML frontmatter for
// Markdown clips, the same fields in a leading comment for HTML clips.
func FormatClip(clip *clipprune.Clip) string {
	var fields strings.Builder
	field := func(key, value string) {
		if value == "" {
			return
		}
		fields.WriteString(key)
		fields.WriteString(": ")
		fields.WriteString(value)
		fields.WriteString("\n")
	}
	field("source", clip.SourceURL)
	if clip.Title != "" {
		field("title", strconv.Quote(clip.Title))
	}
	if clip.Author != "" {
		field("author", strconv.Quote(clip.Author))
	}
	if clip.Site != "" {
		field("site", strconv.Quote(clip.Site))
	}
	if clip.Excerpt != "" {
		field("excerpt", strconv.Quote(clip.Excerpt))
	}
	field("rule", clip.Rule)
	field("status", clip.Status.String())
	field("hash", clip.ContentHash)
	field("run", clip.RunID)
	if !clip.ClippedAt.IsZero() {
		field("clipped", clip.ClippedAt.UTC().Format(time.RFC3339))
	}

	var b strings.Builder
	if clip.Format == clipprune.FormatMarkdown {
		b.WriteString("---\n")
		b.WriteString(fields.String())
		b.WriteString("---\n\n")
	} else {
		b.WriteString("<!--\n")
		b.WriteString(fields.String())
		b.WriteString("-->\n")
	}
	b.WriteString(clip.Content)
	return b.String()
}

var _ clipprune.ClipWriter = (*Writer)(nil)

// Writer writes clips as files below a base directory. A clip whose content
// hash matches the file already on disk is not rewritten.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteClip writes a clip to disk.
func (w *Writer) WriteClip(ctx context.Context, clip *clipprune.Clip) error {
	if err := clip.Validate(); err != nil {
		return err
	}
	relPath, err := URLToPath(clip.SourceURL, clip.Format)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(w.baseDir, filepath.FromSlash(relPath))

	if clip.ContentHash != "" && storedHash(fullPath) == clip.ContentHash {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(FormatClip(clip)), 0644)
}

// Path returns where a clip of format for rawURL is written.
func (w *Writer) Path(rawURL string, format clipprune.Format) (string, error) {
	relPath, err := URLToPath(rawURL, format)
	if err != nil {
		return "", err
	}
	return filepath.Join(w.baseDir, filepath.FromSlash(relPath)), nil
}

// storedHash reads the hash field from the header of an existing clip file.
func storedHash(fullPath string) string {
	f, err := os.Open(fullPath)
	if err != nil {
		return ""
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for i := 0; sc.Scan() && i < 16; i++ {
		line := sc.Text()
		if v, ok := strings.CutPrefix(line, "hash: "); ok {
			return v
		}
		if line == "-->" || (i > 0 && line == "---") {
			break
		}
	}
	return ""
}

var _ clipprune.ClipWriter = (*StreamWriter)(nil)

// StreamWriter writes clips one after another to a stream, such as stdout.
// Safe for concurrent use.
type StreamWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewStreamWriter creates a StreamWriter on w.
func NewStreamWriter(w io.Writer) *StreamWriter {
	return &StreamWriter{w: w}
}

// WriteClip writes the formatted clip followed by a blank line.
func (s *StreamWriter) WriteClip(ctx context.Context, clip *clipprune.Clip) error {
	if err := clip.Validate(); err != nil {
		return err
	}
	var buf bytes.Buffer
	buf.WriteString(FormatClip(clip))
	if !strings.HasSuffix(clip.Content, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString("\n")

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.w.Write(buf.Bytes())
	return err
}
