package render

import (
	"bytes"
	"fmt"
	"html/template"
)

// IconsPath is the URL of the SVG sprite every icon references.
const IconsPath = "/static/icons.svg"

const statusTemplates = `
{{define "spinner"}}
<div class="spinner">
  <svg>
    <use href="{{icon "loader"}}"></use>
  </svg>
</div>
{{end}}

{{define "status"}}
<div class="{{.Class}}">
  <div>
    <svg>
      <use href="{{icon .Icon}}"></use>
    </svg>
  </div>
  <p>{{.Message}}</p>
</div>
{{end}}
`

const recipeTemplate = `
{{define "recipe"}}
<figure class="recipe__fig">
  <img src="{{.Image}}" alt="{{.Title}}" class="recipe__img" />
  <h1 class="recipe__title">
    <span>{{.Title}}</span>
  </h1>
</figure>
<div class="recipe__details">
  <div class="recipe__info">
    <svg class="recipe__info-icon">
      <use href="{{icon "clock"}}"></use>
    </svg>
    <span class="recipe__info-data recipe__info-data--minutes">{{.CookingTime}}</span>
    <span class="recipe__info-text">minutes</span>
  </div>
  <div class="recipe__info">
    <svg class="recipe__info-icon">
      <use href="{{icon "users"}}"></use>
    </svg>
    <span class="recipe__info-data recipe__info-data--people">{{.Servings}}</span>
    <span class="recipe__info-text">servings</span>
    <div class="recipe__info-buttons">
      <button class="btn--tiny btn--update-servings" data-update-to="{{add .Servings -1}}">
        <svg>
          <use href="{{icon "minus-circle"}}"></use>
        </svg>
      </button>
      <button class="btn--tiny btn--update-servings" data-update-to="{{add .Servings 1}}">
        <svg>
          <use href="{{icon "plus-circle"}}"></use>
        </svg>
      </button>
    </div>
  </div>
  <div class="recipe__user-generated {{if not .Key}}hidden{{end}}">
    <svg>
      <use href="{{icon "user"}}"></use>
    </svg>
  </div>
  <button class="btn--round btn--bookmark">
    <svg class="">
      <use href="{{if .Bookmarked}}{{icon "bookmark-fill"}}{{else}}{{icon "bookmark"}}{{end}}"></use>
    </svg>
  </button>
</div>
<div class="recipe__ingredients">
  <h2 class="heading--2">Recipe ingredients</h2>
  <ul class="recipe__ingredient-list">
  {{range .Ingredients}}
    <li class="recipe__ingredient">
      <svg class="recipe__icon">
        <use href="{{icon "check"}}"></use>
      </svg>
      <div class="recipe__quantity">{{fraction .Quantity}}</div>
      <div class="recipe__description">
        <span class="recipe__unit">{{.Unit}}</span>
        {{.Description}}
      </div>
    </li>
  {{end}}
  </ul>
</div>
<div class="recipe__directions">
  <h2 class="heading--2">How to cook it</h2>
  <p class="recipe__directions-text">
    This recipe was carefully designed and tested by
    <span class="recipe__publisher">{{.Publisher}}</span>. Please check out
    directions at their website.
  </p>
  <a class="btn--small recipe__btn" href="{{.SourceURL}}" target="_blank">
    <span>Directions</span>
    <svg class="search__icon">
      <use href="{{icon "arrow-right"}}"></use>
    </svg>
  </a>
</div>
{{end}}
`

const previewTemplate = `
{{define "previews"}}
{{range .}}
<li class="preview" draggable="false">
  <a class="preview__link {{if .Active}}preview__link--active{{end}}" href="#{{.ID}}">
    <figure class="preview__fig">
      <img src="{{.Image}}" alt="{{.Title}}" />
    </figure>
    <div class="preview__data">
      <h4 class="preview__title">{{.Title}}</h4>
      <p class="preview__publisher">{{.Publisher}}</p>
      <div class="preview__user-generated {{if not .Key}}hidden{{end}}">
        <svg>
          <use href="{{icon "user"}}"></use>
        </svg>
      </div>
    </div>
  </a>
</li>
{{end}}
{{end}}
`

const paginationTemplate = `
{{define "page-button"}}
<button data-goto="{{.Page}}" class="btn--inline pagination__btn--{{.Direction}}">
  <svg class="search__icon">
    <use href="{{icon .Arrow}}"></use>
  </svg>
  <span>Page {{.Page}}</span>
</button>
{{end}}

{{define "pagination"}}
{{if .Prev}}{{template "page-button" .Prev}}{{end}}
{{if .Next}}{{template "page-button" .Next}}{{end}}
{{if or .Prev .Next}}
<br /><br /><br /><div class="pagination--total">
  <span>Total number of pages: {{.NumPages}}</span>
</div>
{{end}}
{{end}}
`

const calendarTemplate = `
{{define "calendar-day"}}
<span class="calendar--name">Day {{.Day}}</span>
{{if not .Empty}}
<li class="previewc">
  <div class="image__box">
    <figure class="previewc__fig">
      <img src="{{.Recipe.Image}}" alt="{{.Recipe.Title}}" draggable="false" />
    </figure>
  </div>
  <div class="previewc__data">
    <h4 class="previewc__title calendar-preview-title">{{.Recipe.Title}}</h4>
  </div>
</li>
{{end}}
{{end}}

{{define "calendar"}}
{{range .}}
<div class="calendar__day calendar--name" draggable="true" data-day="{{.Day}}">
{{template "calendar-day" .}}
</div>
{{end}}
{{end}}
`

const extraTemplates = `
{{define "shopping-list"}}<div>{{range .}}<span>{{.}}</span><br />{{end}}</div>{{end}}

{{define "calories"}}<span>{{.}}</span>{{end}}

{{define "key-notice"}}
{{.Notice}} <br />
{{if .Key}}<span class="current__key">{{.Current}}</span>{{else}}{{.None}}{{end}}
{{end}}
`

const uploadTemplate = `
{{define "ingredient-row"}}
<label id="label-{{.}}"{{if gt . 1}} class="extra__ing"{{end}}>Ingredient {{.}}</label>
<div class="upload__row__ingredients" id="div-{{.}}">
  <span><input value="" type="text" name="ingredient-q-{{.}}" placeholder="Quantity" size="4"/></span>
  <span><input value="" type="text" name="ingredient-u-{{.}}" placeholder="Unit" size="2"/></span>
  <span><input value="" type="text" required name="ingredient-d-{{.}}" placeholder="Description" size="6"/></span>
</div>
{{end}}

{{define "upload-form"}}
<button class="btn--close-modal">&times;</button>
<form class="upload" id="form1">
  <div class="upload__column">
    <h3 class="upload__heading">Recipe data</h3>
    <label>Title</label>
    <input value="" required name="title" type="text" />
    <label>URL</label>
    <input value="" required name="sourceUrl" type="text" />
    <label>Image URL</label>
    <input value="" required name="image" type="text" />
    <label>Publisher</label>
    <input value="" required name="publisher" type="text" />
    <label>Prep time</label>
    <input value="" required name="cookingTime" type="number" />
    <label>Servings</label>
    <input value="" required name="servings" type="number" />
  </div>
  <div class="upload__column ingredients__column">
    <h3 class="upload__heading ingredients__name">Ingredients</h3>
    {{range .Rows}}{{template "ingredient-row" .}}{{end}}
  </div>
  <div class="upload__buttons">
    <button class="btn--tiny btn--add--ing" {{if not .CanAdd}}disabled{{end}}>Add ingredient</button>
    <button class="btn--tiny btn--remove--ing" {{if not .CanRemove}}disabled{{end}}>Remove ingredient</button>
  </div>
  <button class="btn upload__btn">
    <svg>
      <use href="{{icon "upload-cloud"}}"></use>
    </svg>
    <span>Upload</span>
  </button>
</form>
{{end}}
`

var funcs = template.FuncMap{
	"icon":     func(name string) string { return IconsPath + "#icon-" + name },
	"fraction": Fraction,
	"add":      func(a, b int) int { return a + b },
}

var templates = template.Must(template.New("views").Funcs(funcs).Parse(
	statusTemplates + recipeTemplate + previewTemplate + paginationTemplate +
		calendarTemplate + extraTemplates + uploadTemplate,
))

func execute(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}
