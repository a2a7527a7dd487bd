package filesystem

type (
	Reader interface {
		ReadJSON(path string, target any) error
		ReadJSONObject(path string) (map[string]any, error)
	}
	Writer interface {
		WriteBytes(path string, data []byte) error
	}
)
