package models

// Field identifies which part of the builder a Feedback message is about.
type Field string

const (
	FieldBun      Field = "bun"
	FieldToppings Field = "toppings"
	FieldGeneral  Field = "general"
)

// Level is the tone of a Feedback message.
type Level string

const (
	LevelSuccess Level = "success"
	LevelWarn    Level = "warn"
	LevelError   Level = "error"
)

// Feedback is a validation or confirmation message shown next to a field.
type Feedback struct {
	Field   Field
	Level   Level
	Message string
}
