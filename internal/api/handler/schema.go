package handler

// Form payloads posted by the HTML pages.

type credentialsForm struct {
	Username string `form:"username" validate:"required,max=64"`
	// bcrypt only looks at the first 72 bytes and rejects longer input.
	Password string `form:"password" validate:"required,max=72"`
}

type postForm struct {
	Title   string `form:"title"   validate:"required,max=200"`
	Content string `form:"content" validate:"max=20000"`
}

type noteForm struct {
	Note string `form:"note" validate:"required,max=10000"`
}

type taskForm struct {
	Task string `form:"task" validate:"required,max=500"`
}
