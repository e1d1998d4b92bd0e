package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

// ViewMessages holds the empty-state text of the display surfaces.
type ViewMessages struct {
	RecipeStart      string `yaml:"recipe_start"`
	RecipeError      string `yaml:"recipe_error"`
	NoResults        string `yaml:"no_results"`
	NoBookmarks      string `yaml:"no_bookmarks"`
	CalendarNoRecipe string `yaml:"calendar_no_recipe"`
}

// DialogueMessages holds the text shown in the dialogue window and the upload form.
type DialogueMessages struct {
	UploadSuccess       string `yaml:"upload_success"`
	ShoppingListSuccess string `yaml:"shopping_list_success"`
	ShoppingNoRecipe    string `yaml:"shopping_no_recipe"`
	CaloriesSuccess     string `yaml:"calories_success"`
	CaloriesNoRecipe    string `yaml:"calories_no_recipe"`
	CaloriesResult      string `yaml:"calories_result"`
	PlanEmptied         string `yaml:"plan_emptied"`
}

// KeyMessages holds the text of the key dialog and its notification banner.
type KeyMessages struct {
	Saved         string `yaml:"saved"`
	Deleted       string `yaml:"deleted"`
	Rejected      string `yaml:"rejected"`
	ConfirmDelete string `yaml:"confirm_delete"`
	Notice        string `yaml:"notice"`
	Current       string `yaml:"current"`
	None          string `yaml:"none"`
}

// Messages is every user-visible string, loaded from YAML.
type Messages struct {
	Views    ViewMessages     `yaml:"views"`
	Dialogue DialogueMessages `yaml:"dialogue"`
	Key      KeyMessages      `yaml:"key"`
}

// DefaultMessages returns the built-in English messages.
func DefaultMessages() *Messages {
	return &Messages{
		Views: ViewMessages{
			RecipeStart:      "Start by searching for a recipe or an ingredient. Have fun!",
			RecipeError:      "We could not find the recipe. Please, try to find another one!",
			NoResults:        "No recipes found for your query! Please, try again.",
			NoBookmarks:      "No bookmarks yet. Find a nice recipe and bookmark it :)",
			CalendarNoRecipe: "We could not find the recipe ! Please, open the recipe that you want to add.",
		},
		Dialogue: DialogueMessages{
			UploadSuccess:       "Recipe has been successfully uploaded!",
			ShoppingListSuccess: "Shopping list has been successfully created",
			ShoppingNoRecipe:    "Something went wrong. Please, choose and display the recipe that you want to shop for!",
			CaloriesSuccess:     "Calories have been successfully counted!",
			CaloriesNoRecipe:    "Something went wrong. Please, choose and display the recipe you want to analyze!",
			CaloriesResult:      "Approximate number of calories per serving is {{.Calories}}",
			PlanEmptied:         "Weekly Plan has been sucessfully emptied!",
		},
		Key: KeyMessages{
			Saved:         "A new Key has been successfully added to the application system!",
			Deleted:       "The Key has been successfully deleted from the application system!",
			Rejected:      "Something went wrong. Please enter the Key and make sure it is new!",
			ConfirmDelete: "Are you sure you want to delete your old Key? All your Bookmarks will be deleted and you will not be able to add/save new recipes unless you add the Key.",
			Notice: "Without the Key you cannot add or save recipes. Remember, if you are going to change the key you used before, " +
				"all your previous Bookmarks will disappear. Also, you will not have access to those recipes you have uploaded so far. " +
				"To be on a safe side, save your previous Key somewhere, before generating a new one. You can use it to access the recipes you have uploaded.",
			Current: "Your currently used Key is: {{.Key}}",
			None:    "Currently, no Key is being used.",
		},
	}
}

// LoadMessages reads a YAML message file over the defaults. A missing file yields the defaults.
func LoadMessages(path string) (*Messages, error) {
	messages := DefaultMessages()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return messages, nil
		}
		return nil, fmt.Errorf("failed to read messages file: %w", err)
	}

	if err := yaml.Unmarshal(data, messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages YAML: %w", err)
	}

	return messages, nil
}

// Render executes Go template interpolation on a message string, e.g. {{.Calories}}.
func (m *Messages) Render(tmpl string, data map[string]interface{}) (string, error) {
	t, err := template.New("message").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse message template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render message template: %w", err)
	}

	return strings.TrimSpace(buf.String()), nil
}
