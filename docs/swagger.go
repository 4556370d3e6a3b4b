package docs

// @title Profile Analyzer API
// @version 1.0
// @description Builds user profiles (interests, personality, habits, travel, lifestyle and spending signals) from social posts and serves the stored results.

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /
// @schemes http https
