package handlers

import (
	"errors"
	"strings"
	"sync"

	"dropship-dashboard/internal/models"
	"dropship-dashboard/internal/scheduler"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type settingsForm struct {
	DSersUsername   string `form:"dsers_username" binding:"max=200"`
	DSersPassword   string `form:"dsers_password" binding:"max=200"`
	UpdateFrequency string `form:"update_frequency" binding:"omitempty,frequency"`
	PriceMargin     string `form:"price_margin" binding:"omitempty,margin"`
}

func (f settingsForm) settings() models.Settings {
	return models.Settings{
		DSersUsername:   strings.TrimSpace(f.DSersUsername),
		DSersPassword:   f.DSersPassword,
		UpdateFrequency: strings.TrimSpace(f.UpdateFrequency),
		PriceMargin:     strings.TrimSpace(f.PriceMargin),
	}
}

type scheduleForm struct {
	TaskType    string `form:"task_type" binding:"required,oneof=update_prices import_products process_orders analyze_market"`
	Frequency   string `form:"frequency" binding:"required"`
	Keywords    string `form:"keywords" binding:"max=500"`
	Platform    string `form:"platform"`
	MaxProducts string `form:"max_products" binding:"omitempty,numeric"`
	Margin      string `form:"margin" binding:"omitempty,margin"`
	Budget      string `form:"budget" binding:"omitempty,numeric"`
	Categories  string `form:"categories"`
}

// params mantém só os campos preenchidos
func (f scheduleForm) params() map[string]any {
	params := map[string]any{}
	for key, value := range map[string]string{
		"keywords":     f.Keywords,
		"platform":     f.Platform,
		"max_products": f.MaxProducts,
		"margin":       f.Margin,
		"budget":       f.Budget,
		"categories":   f.Categories,
	} {
		if value = strings.TrimSpace(value); value != "" {
			params[key] = value
		}
	}
	return params
}

type describeRequest struct {
	Product  string   `json:"product" binding:"required,max=200"`
	Keywords []string `json:"keywords"`
}

type sentimentRequest struct {
	Product string   `json:"product" binding:"required,max=200"`
	Reviews []string `json:"reviews"`
}

var (
	validatorsOnce sync.Once
	validatorsErr  error
)

// registerValidators adiciona as regras próprias do painel ao validador do gin
func registerValidators() error {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			validatorsErr = errors.New("unexpected validator engine")
			return
		}
		if err := v.RegisterValidation("frequency", func(fl validator.FieldLevel) bool {
			return scheduler.ValidFrequency(fl.Field().String())
		}); err != nil {
			validatorsErr = err
			return
		}
		validatorsErr = v.RegisterValidation("margin", func(fl validator.FieldLevel) bool {
			_, err := models.ParseMargin(fl.Field().String())
			return err == nil
		})
	})
	return validatorsErr
}

var fieldLabels = map[string]string{
	"DSersUsername":   "usuario de DSers",
	"DSersPassword":   "contraseña de DSers",
	"UpdateFrequency": "frecuencia de actualización",
	"PriceMargin":     "margen de precio",
	"TaskType":        "tipo de tarea",
	"Frequency":       "frecuencia",
	"Keywords":        "palabras clave",
	"MaxProducts":     "máximo de productos",
	"Margin":          "margen",
	"Budget":          "presupuesto",
}

// bindError descreve para o usuário uma falha de binding
func bindError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Datos del formulario no válidos"
	}
	field := verrs[0].Field()
	if label, ok := fieldLabels[field]; ok {
		field = label
	}
	return "Valor no válido para " + field
}
