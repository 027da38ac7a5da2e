package main

// @title           mini_crm API
// @version         1.0
// @description     Freelancer CRM: clients, projects, interactions and reminders scoped to the signed-in user.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
// @description     "Bearer <token>" as returned by /api/auth/signup or /api/auth/login.

func main() {
	Execute()
}
