package models

// FormField names one input of the product form.
type FormField string

const (
	FieldName        FormField = "name"
	FieldDescription FormField = "description"
	FieldQuantity    FormField = "quantity"
)

// FormFields lists the form inputs in render order.
var FormFields = []FormField{FieldName, FieldDescription, FieldQuantity}

// ProductForm is the field bag behind the create form. Quantity stays text
// until the form is submitted.
type ProductForm struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
}

// With returns a copy of the form with exactly one field replaced. The second
// return value is false when field is not a known form input.
func (f ProductForm) With(field FormField, value string) (ProductForm, bool) {
	switch field {
	case FieldName:
		f.Name = value
	case FieldDescription:
		f.Description = value
	case FieldQuantity:
		f.Quantity = value
	default:
		return f, false
	}
	return f, true
}

// Get returns the current value of field.
func (f ProductForm) Get(field FormField) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldDescription:
		return f.Description
	case FieldQuantity:
		return f.Quantity
	}
	return ""
}

// Required reports whether the field carries the HTML required marker.
func (field FormField) Required() bool {
	return field == FieldName || field == FieldQuantity
}

// Label is the text shown next to the field's input.
func (field FormField) Label() string {
	switch field {
	case FieldName:
		return "Name"
	case FieldDescription:
		return "Description"
	case FieldQuantity:
		return "Quantity"
	}
	return string(field)
}

// InputType is the HTML input type used to render the field.
func (field FormField) InputType() string {
	if field == FieldQuantity {
		return "number"
	}
	return "text"
}
