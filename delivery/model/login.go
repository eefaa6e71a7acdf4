package model

// Nav is the navbar state. It is hidden on the home and login pages.
type Nav struct {
	Show         bool
	OperatorName string
	CSRFToken    string
}

// Page is embedded by every page's data.
type Page struct {
	Title string
	Nav   Nav
}

// LoginPage holds the data for the login form.
type LoginPage struct {
	Page
	CSRFToken  string
	Identifier string
	Message    string
}

// ErrorPage holds the data for the error page.
type ErrorPage struct {
	Page
	Reason string
}
