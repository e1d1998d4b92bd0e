package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/windoze95/saltybytes-planner/internal/models"
	"github.com/windoze95/saltybytes-planner/internal/remote"
	"github.com/windoze95/saltybytes-planner/internal/repository"
)

// --- MockRecipeProvider ---

// MockRecipeProvider is a mock implementation of remote.RecipeProvider.
type MockRecipeProvider struct {
	GetRecipeFunc    func(ctx context.Context, id, key string) (models.Recipe, error)
	SearchFunc       func(ctx context.Context, query, key string) ([]models.RecipeSummary, error)
	CreateRecipeFunc func(ctx context.Context, payload remote.NewRecipe, key string) (models.Recipe, error)

	mu    sync.Mutex
	Calls []string
}

func (m *MockRecipeProvider) record(call string) {
	m.mu.Lock()
	m.Calls = append(m.Calls, call)
	m.mu.Unlock()
}

// CallCount returns how many provider calls were made.
func (m *MockRecipeProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func (m *MockRecipeProvider) GetRecipe(ctx context.Context, id, key string) (models.Recipe, error) {
	m.record("GetRecipe:" + id)
	if m.GetRecipeFunc != nil {
		return m.GetRecipeFunc(ctx, id, key)
	}
	return models.Recipe{}, fmt.Errorf("GetRecipe not configured")
}

func (m *MockRecipeProvider) Search(ctx context.Context, query, key string) ([]models.RecipeSummary, error) {
	m.record("Search:" + query)
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, key)
	}
	return nil, fmt.Errorf("Search not configured")
}

func (m *MockRecipeProvider) CreateRecipe(ctx context.Context, payload remote.NewRecipe, key string) (models.Recipe, error) {
	m.record("CreateRecipe:" + payload.Title)
	if m.CreateRecipeFunc != nil {
		return m.CreateRecipeFunc(ctx, payload, key)
	}
	return models.Recipe{}, fmt.Errorf("CreateRecipe not configured")
}

// --- MockNutritionProvider ---

// MockNutritionProvider is a mock implementation of remote.NutritionProvider.
type MockNutritionProvider struct {
	AnalyzeRecipeFunc      func(ctx context.Context, req remote.AnalyzeRequest) ([]remote.ResolvedIngredient, error)
	IngredientCaloriesFunc func(ctx context.Context, id int, amount float64) (float64, bool, error)
}

func (m *MockNutritionProvider) AnalyzeRecipe(ctx context.Context, req remote.AnalyzeRequest) ([]remote.ResolvedIngredient, error) {
	if m.AnalyzeRecipeFunc != nil {
		return m.AnalyzeRecipeFunc(ctx, req)
	}
	return nil, fmt.Errorf("AnalyzeRecipe not configured")
}

func (m *MockNutritionProvider) IngredientCalories(ctx context.Context, id int, amount float64) (float64, bool, error) {
	if m.IngredientCaloriesFunc != nil {
		return m.IngredientCaloriesFunc(ctx, id, amount)
	}
	return 0, false, fmt.Errorf("IngredientCalories not configured")
}

// --- MemorySnapshotRepo ---

// MemorySnapshotRepo is an in-memory repository.SnapshotRepo.
type MemorySnapshotRepo struct {
	mu     sync.Mutex
	Values map[string]map[string]string
	SetErr error
}

// NewMemorySnapshotRepo creates an empty MemorySnapshotRepo.
func NewMemorySnapshotRepo() *MemorySnapshotRepo {
	return &MemorySnapshotRepo{Values: make(map[string]map[string]string)}
}

func (m *MemorySnapshotRepo) Get(clientID, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Values[clientID][key]
	if !ok {
		return "", repository.NewNotFoundError("snapshot not found")
	}
	return v, nil
}

func (m *MemorySnapshotRepo) Set(clientID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	if m.Values[clientID] == nil {
		m.Values[clientID] = make(map[string]string)
	}
	m.Values[clientID][key] = value
	return nil
}

func (m *MemorySnapshotRepo) Remove(clientID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Values[clientID], key)
	return nil
}

// Has reports whether key is stored for the client.
func (m *MemorySnapshotRepo) Has(clientID, key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Values[clientID][key]
	return ok
}
