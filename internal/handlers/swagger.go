package handlers

// @title Prediction Proxy API
// @version 1.0
// @description Forwards JSON instances to a hosted model-serving endpoint and returns its predictions

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @tag.name predictions
// @tag.description Online prediction operations
