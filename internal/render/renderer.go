package render

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"fanvault/internal/catalog"
	"fanvault/internal/logging"
	"fanvault/internal/metadata"
	"fanvault/internal/target"
	"fanvault/internal/textutil"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed templates/styles.css
var styleSheet []byte

// Directory names inside the rendered tree.
const (
	ResourceDirName = "resources"
	StoryDirName    = "stories"
	CategoryDirName = "category"
	AuthorDirName   = "author"
)

// WelcomePage is the entry page the packager is pointed at.
const WelcomePage = "index.html"

// Renderer writes archive pages for one catalog index.
type Renderer struct {
	templates *template.Template
	logger    *slog.Logger
}

// New parses the embedded templates and returns a ready renderer.
func New(logger *slog.Logger) (*Renderer, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{
		templates: tmpl,
		logger:    logging.NewComponentLogger(logger, "render"),
	}, nil
}

// RenderSite writes every page and static resource into dir. Story files are
// not copied here; the caller places them under dir/stories.
func (r *Renderer) RenderSite(dir, title string, idx *catalog.Index) error {
	if err := r.writeResources(dir); err != nil {
		return err
	}
	if err := r.writeIndexPage(dir, title, idx); err != nil {
		return err
	}
	if err := r.writeStatsPage(dir, idx); err != nil {
		return err
	}
	if err := r.writeCategoryPages(dir, idx); err != nil {
		return err
	}
	if err := r.writeAuthorPages(dir, idx); err != nil {
		return err
	}
	return nil
}

func (r *Renderer) writeResources(dir string) error {
	resourceDir := filepath.Join(dir, ResourceDirName)
	if err := os.MkdirAll(resourceDir, 0o755); err != nil {
		return fmt.Errorf("create resource dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(resourceDir, "styles.css"), styleSheet, 0o644); err != nil {
		return fmt.Errorf("write style sheet: %w", err)
	}
	return nil
}

type categoryRow struct {
	Name    string
	Href    string
	Stories int
}

type indexContext struct {
	Title      string
	Stats      catalog.Stats
	Categories []categoryRow
}

func (r *Renderer) writeIndexPage(dir, title string, idx *catalog.Index) error {
	rows := make([]categoryRow, 0, len(idx.ByCategory))
	for _, name := range idx.CategoryNames() {
		rows = append(rows, categoryRow{
			Name:    name,
			Href:    categoryHref(name),
			Stories: len(idx.ByCategory[name]),
		})
	}
	// Busiest categories first, ties in collated name order.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Stories > rows[j].Stories
	})

	return r.renderToFile(filepath.Join(dir, WelcomePage), "index.html.tmpl", indexContext{
		Title:      title,
		Stats:      idx.ComputeStats(),
		Categories: rows,
	})
}

type statsContext struct {
	Stats            catalog.Stats
	StoriesPerAuthor float64
	ChaptersPerStory float64
	WordsPerChapter  float64
	NovelsLower      float64
	NovelsUpper      float64
	Bibles           float64
}

// Reference lengths used to put the total word count into perspective, taken
// from typical novel sizes and the King James Bible.
const (
	novelWordsUpper = 90000.0
	novelWordsLower = 60000.0
	bibleWords      = 789650.0
)

func (r *Renderer) writeStatsPage(dir string, idx *catalog.Index) error {
	stats := idx.ComputeStats()
	ctx := statsContext{Stats: stats}
	if stats.Authors > 0 {
		ctx.StoriesPerAuthor = float64(stats.Stories) / float64(stats.Authors)
	}
	if stats.Stories > 0 {
		ctx.ChaptersPerStory = float64(stats.Chapters) / float64(stats.Stories)
	}
	if stats.Chapters > 0 {
		ctx.WordsPerChapter = float64(stats.Words) / float64(stats.Chapters)
	}
	ctx.NovelsLower = float64(stats.Words) / novelWordsUpper
	ctx.NovelsUpper = float64(stats.Words) / novelWordsLower
	ctx.Bibles = float64(stats.Words) / bibleWords

	return r.renderToFile(filepath.Join(dir, "stats.html"), "stats.html.tmpl", ctx)
}

type storyRow struct {
	Title      string
	Href       string
	Author     string
	AuthorHref string
	Status     string
	Words      int
	Chapters   int
	Updated    string
}

type listContext struct {
	Heading string
	Author  *catalog.AuthorEntry
	Stories []storyRow
}

func (r *Renderer) writeCategoryPages(dir string, idx *catalog.Index) error {
	for _, name := range idx.CategoryNames() {
		catDir := filepath.Join(dir, CategoryDirName, textutil.SafeName(name))
		if err := os.MkdirAll(catDir, 0o755); err != nil {
			return fmt.Errorf("create category dir: %w", err)
		}

		stories := idx.CategoryStories(name)
		err := r.renderToFile(filepath.Join(catDir, "list.html"), "category.html.tmpl", listContext{
			Heading: name,
			Stories: storyRows(idx.ByCategory[name], idx),
		})
		if err != nil {
			return err
		}
		if err := writeStoriesJSON(filepath.Join(catDir, "stories.json"), stories); err != nil {
			return err
		}
		r.logger.Debug("rendered category page",
			logging.String("category", name),
			logging.Int("stories", len(stories)))
	}
	return nil
}

func (r *Renderer) writeAuthorPages(dir string, idx *catalog.Index) error {
	for _, key := range idx.AuthorKeys() {
		entry := idx.ByAuthor[key]
		authorDir := filepath.Join(dir, AuthorDirName, authorDirName(key))
		if err := os.MkdirAll(authorDir, 0o755); err != nil {
			return fmt.Errorf("create author dir: %w", err)
		}

		err := r.renderToFile(filepath.Join(authorDir, "author.html"), "author.html.tmpl", listContext{
			Heading: entry.Name,
			Author:  entry,
			Stories: storyRows(entry.Stories, idx),
		})
		if err != nil {
			return err
		}
		if err := writeStoriesJSON(filepath.Join(authorDir, "stories.json"), idx.AuthorStories(key)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderToFile(path, templateName string, data any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if err := r.templates.ExecuteTemplate(file, templateName, data); err != nil {
		file.Close()
		return fmt.Errorf("render %s: %w", templateName, err)
	}
	return file.Close()
}

func writeStoriesJSON(path string, stories []metadata.Canonical) error {
	data, err := json.Marshal(stories)
	if err != nil {
		return fmt.Errorf("marshal story metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func storyRows(ids []target.Identity, idx *catalog.Index) []storyRow {
	rows := make([]storyRow, 0, len(ids))
	for _, id := range ids {
		c, ok := idx.Stories[id]
		if !ok {
			continue
		}
		rows = append(rows, storyRow{
			Title:      c.Title,
			Href:       "../../" + StoryDirName + "/" + id.Key() + "/story.html",
			Author:     c.Author,
			AuthorHref: "../../" + AuthorDirName + "/" + authorDirName(catalog.AuthorKey{Source: id.Source, AuthorID: c.AuthorID}) + "/author.html",
			Status:     c.Status,
			Words:      c.NumWords,
			Chapters:   c.NumChapters,
			Updated:    c.DateUpdated,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Title < rows[j].Title })
	return rows
}

func categoryHref(name string) string {
	return CategoryDirName + "/" + textutil.SafeName(name) + "/list.html"
}

func authorDirName(key catalog.AuthorKey) string {
	return key.Source + "-" + textutil.SafeName(key.AuthorID)
}
