package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"restaurant-system/internal/dto"
	apperrors "restaurant-system/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testMaxPayloadSize = 1024

func newTestResolver() *ImportInputResolver {
	return NewImportInputResolver(testMaxPayloadSize, zap.NewNop())
}

func TestResolve_ValidInlineDocument(t *testing.T) {
	resolver := newTestResolver()

	doc, err := resolver.Resolve(ImportInput{Data: []byte(`{
		"restaurants": [
			{"name": "Кафе 1", "menus": [
				{"name": "Обед", "menu_items": [{"name": "Плов", "price": 25.5}]}
			]}
		]
	}`)})

	require.NoError(t, err)
	require.Len(t, doc.Restaurants, 1)
	assert.Equal(t, "Кафе 1", doc.Restaurants[0].Name)
	require.NotNil(t, doc.Restaurants[0].Menus)
	menus := *doc.Restaurants[0].Menus
	require.Len(t, menus, 1)
	require.Len(t, menus[0].Items(), 1)
	assert.Equal(t, 25.5, menus[0].Items()[0].Price)
}

func TestResolve_DishesAlternateKey(t *testing.T) {
	resolver := newTestResolver()

	doc, err := resolver.Resolve(ImportInput{Data: []byte(`{
		"restaurants": [
			{"name": "Кафе", "menus": [
				{"name": "Ужин", "dishes": [{"name": "Суп", "price": 10}]}
			]}
		]
	}`)})

	require.NoError(t, err)
	items := (*doc.Restaurants[0].Menus)[0].Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Суп", items[0].Name)
}

func TestResolve_PayloadTooLarge(t *testing.T) {
	resolver := newTestResolver()

	big := `{"restaurants": [{"name": "` + strings.Repeat("x", testMaxPayloadSize) + `"}]}`
	_, err := resolver.Resolve(ImportInput{Data: []byte(big)})

	assert.ErrorIs(t, err, apperrors.ErrPayloadTooLarge)
}

func TestResolve_MalformedJSON(t *testing.T) {
	resolver := newTestResolver()

	_, err := resolver.Resolve(ImportInput{Data: []byte(`{"restaurants": [`)})

	assert.ErrorIs(t, err, apperrors.ErrParse)
}

func TestResolve_InvalidStructure(t *testing.T) {
	resolver := newTestResolver()

	cases := map[string]string{
		"верхний уровень не объект":  `[{"name": "Кафе"}]`,
		"нет ключа restaurants":      `{"menus": []}`,
		"restaurants не массив":      `{"restaurants": {"name": "Кафе"}}`,
		"элемент массива не ресторан": `{"restaurants": [42]}`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := resolver.Resolve(ImportInput{Data: []byte(payload)})
			assert.ErrorIs(t, err, apperrors.ErrInvalidStructure)
		})
	}
}

func TestResolve_EmptyRestaurants(t *testing.T) {
	resolver := newTestResolver()

	_, err := resolver.Resolve(ImportInput{Data: []byte(`{"restaurants": []}`)})

	assert.ErrorIs(t, err, apperrors.ErrEmptyRestaurants)
}

func TestResolve_FromFile(t *testing.T) {
	resolver := newTestResolver()

	path := filepath.Join(t.TempDir(), "import_test.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"restaurants": [{"name": "Из файла"}]}`), 0644))

	doc, err := resolver.Resolve(ImportInput{FilePath: path})

	require.NoError(t, err)
	require.Len(t, doc.Restaurants, 1)
	assert.Equal(t, "Из файла", doc.Restaurants[0].Name)
}

func TestResolve_FileNotFound(t *testing.T) {
	resolver := newTestResolver()

	_, err := resolver.Resolve(ImportInput{FilePath: "/nonexistent/import.json"})

	assert.ErrorIs(t, err, apperrors.ErrInputNotFound)
}

func TestResolve_FileTooLarge(t *testing.T) {
	resolver := newTestResolver()

	path := filepath.Join(t.TempDir(), "import_big.json")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", testMaxPayloadSize+1)), 0644))

	_, err := resolver.Resolve(ImportInput{FilePath: path})

	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
}

func TestResolve_EmptyInput(t *testing.T) {
	resolver := newTestResolver()

	_, err := resolver.Resolve(ImportInput{})

	assert.ErrorIs(t, err, apperrors.ErrInputNotFound)
}

func TestValidateSubmission(t *testing.T) {
	resolver := newTestResolver()

	assert.NoError(t, resolver.ValidateSubmission([]byte(`{"restaurants": []}`)))
	// Пустой restaurants на приеме не отклоняется - это дело асинхронной задачи.
	assert.NoError(t, resolver.ValidateSubmission([]byte(`{}`)))

	assert.ErrorIs(t, resolver.ValidateSubmission([]byte(`{"restaurants"`)), apperrors.ErrParse)
	assert.ErrorIs(t, resolver.ValidateSubmission([]byte(`[1, 2, 3]`)), apperrors.ErrInvalidStructure)
	assert.ErrorIs(t,
		resolver.ValidateSubmission([]byte(strings.Repeat(" ", testMaxPayloadSize+1))),
		apperrors.ErrPayloadTooLarge)
}

func TestConsolidateItems_LastOccurrenceWins(t *testing.T) {
	items := []dto.ItemPayload{
		{Name: "Плов", Price: 10},
		{Name: "Суп", Price: 5},
		{Name: "Плов", Price: 12},
		{Name: "Плов", Price: 15},
	}

	consolidated, originalCount, removed := consolidateItems(items)

	assert.Equal(t, 4, originalCount)
	assert.Equal(t, 2, removed)
	require.Len(t, consolidated, 2)
	assert.Equal(t, "Плов", consolidated[0].Name)
	assert.Equal(t, 15.0, consolidated[0].Price)
	assert.Equal(t, "Суп", consolidated[1].Name)
}

func TestConsolidateItems_BlankNamesDropped(t *testing.T) {
	items := []dto.ItemPayload{
		{Name: "  ", Price: 10},
		{Name: "", Price: 5},
		{Name: " Плов ", Price: 12},
	}

	consolidated, originalCount, removed := consolidateItems(items)

	assert.Equal(t, 1, originalCount)
	assert.Equal(t, 0, removed)
	require.Len(t, consolidated, 1)
	assert.Equal(t, "Плов", consolidated[0].Name)
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "512B", FormatFileSize(512))
	assert.Equal(t, "1.00KB", FormatFileSize(1024))
	assert.Equal(t, "5.00MB", FormatFileSize(5*1024*1024))
}
