package tutorial

// User is a user from the example API.
type User struct {
	ID       int    `json:"id" msgpack:"id"`
	Name     string `json:"name" msgpack:"name"`
	Username string `json:"username" msgpack:"username"`
	Email    string `json:"email" msgpack:"email"`
}

// Todo is a todo item owned by a user.
type Todo struct {
	UserID    int    `json:"userId" msgpack:"userId"`
	ID        int    `json:"id" msgpack:"id"`
	Title     string `json:"title" msgpack:"title"`
	Completed bool   `json:"completed" msgpack:"completed"`
}

// Status returns the label shown next to a todo.
func (t Todo) Status() string {
	if t.Completed {
		return "Completed"
	}
	return "Pending"
}
