package templates

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/sprig/v3"
	"github.com/a-h/templ"
)

// Name identifies a template file: Name "otp-login" is "<dir>/otp-login.html".
type Name string

// Templates shipped with the service.
const (
	VerificationEmail Name = "verification-email"
	PasswordReset     Name = "password-reset"
	OTPLogin          Name = "otp-login"
)

// Ext is the file extension of template files.
const Ext = ".html"

// Vars are the named values substituted into a template.
type Vars map[string]any

var (
	ErrTemplateNotFound    = errors.New("email template not found")
	ErrInvalidTemplateName = errors.New("invalid email template name")
	ErrRenderFailed        = errors.New("failed to render email template")
)

// Config locates the template directory.
type Config struct {
	Dir string `env:"EMAIL_TEMPLATES_DIR" envDefault:"templates/emails"`
}

// Validate rejects empty names and anything that could escape the template directory.
func (n Name) Validate() error {
	s := string(n)
	if s == "" || s == "." || s == ".." ||
		strings.ContainsAny(s, `/\`) || strings.Contains(s, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidTemplateName, s)
	}
	return nil
}

// Path returns the file that backs the template inside dir.
func (n Name) Path(dir string) string {
	return filepath.Join(dir, string(n)+Ext)
}

// File returns a component that reads, parses and executes the template file
// each time it is rendered. Nothing is cached, so edits on disk show up on the
// next render.
func File(dir string, name Name, vars Vars) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := name.Validate(); err != nil {
			return err
		}

		path := name.Path(dir)
		raw, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
			}
			return fmt.Errorf("%w: read %s: %v", ErrRenderFailed, path, err)
		}

		tmpl, err := template.New(string(name)).
			Option("missingkey=zero").
			Funcs(sprig.FuncMap()).
			Parse(string(raw))
		if err != nil {
			return fmt.Errorf("%w: parse %s: %v", ErrRenderFailed, path, err)
		}

		if err := tmpl.Execute(w, vars); err != nil {
			return fmt.Errorf("%w: execute %s: %v", ErrRenderFailed, path, err)
		}
		return nil
	})
}

// Render renders any templ component into a string.
func Render(ctx context.Context, c templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Renderer renders named templates from a fixed directory.
type Renderer struct {
	dir string
}

// NewRenderer creates a Renderer for cfg.Dir. A relative directory that does
// not exist under the working directory is looked up next to the executable
// instead (see ResolveDir). A directory missing in both places surfaces as
// ErrTemplateNotFound at render time.
func NewRenderer(cfg Config) *Renderer {
	base := ""
	if exe, err := os.Executable(); err == nil {
		base = filepath.Dir(exe)
	}
	return &Renderer{dir: ResolveDir(cfg.Dir, base)}
}

// ResolveDir returns dir unchanged when it is absolute or exists relative to
// the working directory. Otherwise it returns dir joined to base if that
// exists, and dir unchanged when neither does.
func ResolveDir(dir, base string) string {
	if dir == "" || filepath.IsAbs(dir) || isDir(dir) || base == "" {
		return dir
	}
	if alt := filepath.Join(base, dir); isDir(alt) {
		return alt
	}
	return dir
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Dir returns the template directory.
func (r *Renderer) Dir() string {
	return r.dir
}

// Render renders the named template with vars.
func (r *Renderer) Render(ctx context.Context, name Name, vars Vars) (string, error) {
	return Render(ctx, File(r.dir, name, vars))
}
