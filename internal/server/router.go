package server

// routes registers the middleware stack and the API endpoints.
//
// Everything mounts under the /api prefix. PUT and PATCH share one
// handler; both apply partial updates.
func (s *Server) routes() {
	s.engine.Use(s.requestID(), s.logRequests(), s.cors(), s.rateLimit())

	api := s.engine.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.GET("/tasks", s.handleListTasks)
		api.POST("/tasks", s.handleCreateTask)
		api.GET("/tasks/:id", s.handleGetTask)
		api.PUT("/tasks/:id", s.handleUpdateTask)
		api.PATCH("/tasks/:id", s.handleUpdateTask)
		api.DELETE("/tasks/:id", s.handleDeleteTask)
	}
}
