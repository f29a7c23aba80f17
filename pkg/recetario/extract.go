package recetario

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/ukaji3/recetario-go/pkg/recetario/models"
	"github.com/ukaji3/recetario-go/pkg/recetario/parser"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Extract extracts recipe families from an Excel file.
func Extract(path string, opts Options) (*models.Cookbook, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, unreadable(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, unreadable(err)
	}
	defer f.Close()

	return ExtractFile(f, filepath.Base(path), opts)
}

// ExtractReader extracts recipe families from an xlsx stream, such as an
// uploaded file.
func ExtractReader(r io.Reader, bookName string, opts Options) (*models.Cookbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, unreadable(err)
	}
	defer f.Close()

	return ExtractFile(f, bookName, opts)
}

// ExtractFile runs the pipeline over an opened workbook. Sheets are parsed
// in workbook order; the returned families are sorted by name.
func ExtractFile(f *excelize.File, bookName string, opts Options) (*models.Cookbook, error) {
	p, err := opts.policy()
	if err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}
	log := opts.logger().With(zap.String("book", bookName))

	families := []models.Family{}
	var reports []models.SheetReport
	seen := make(map[string]int)

	for _, sheetName := range f.GetSheetList() {
		if p.IsDeniedSheet(sheetName) {
			report := models.SheetReport{Sheet: sheetName, Skips: []models.Skip{{Sheet: sheetName, Reason: models.SkipDeniedSheet}}}
			logSkips(log, report)
			reports = append(reports, report)
			continue
		}

		m, err := parser.BuildMatrix(f, sheetName)
		if err != nil {
			log.Warn("sheet unreadable", zap.Error(NewExtractionError(sheetName, "matrix", err)))
			reports = append(reports, models.SheetReport{Sheet: sheetName, Skips: []models.Skip{{Sheet: sheetName, Reason: models.SkipSheetUnreadable}}})
			continue
		}

		recipes, report := parseSheet(sheetName, m, p)
		logSkips(log, report)
		reports = append(reports, report)
		if len(recipes) == 0 {
			continue
		}
		for i := range recipes {
			recipes[i].ID = uniqueID(seen, recipes[i].ID)
		}
		families = append(families, models.Family{Name: sheetName, Recipes: recipes})
		log.Debug("family parsed",
			zap.String("family", sheetName),
			zap.Int("recipes", len(recipes)),
			zap.String("first", recipes[0].Name))
	}

	sortFamilies(families)

	cb := &models.Cookbook{BookName: bookName, Families: families}
	if opts.ShouldIncludeReports() {
		cb.Reports = reports
	}
	log.Info("cookbook extracted",
		zap.Int("sheets", len(reports)),
		zap.Int("families", len(families)),
		zap.Int("recipes", cb.RecipeCount()))
	return cb, nil
}

// sortFamilies orders families by name with Spanish collation, so that
// accents and case do not push "Ñoquis" or "ensaladas" to the end.
func sortFamilies(families []models.Family) {
	col := collate.New(language.Spanish, collate.IgnoreCase)
	sort.SliceStable(families, func(i, j int) bool {
		return col.CompareString(families[i].Name, families[j].Name) < 0
	})
}

// uniqueID suffixes a repeated id with its occurrence ordinal.
func uniqueID(seen map[string]int, id string) string {
	seen[id]++
	if n := seen[id]; n > 1 {
		return fmt.Sprintf("%s#%d", id, n)
	}
	return id
}

func logSkips(log *zap.Logger, report models.SheetReport) {
	for _, s := range report.Skips {
		log.Debug("skipped",
			zap.String("sheet", s.Sheet),
			zap.Int("row", s.Row),
			zap.String("reason", string(s.Reason)))
	}
}
