// Package seed populates an empty store with the starter content the blog
// ships with: a handful of sample posts and the default admin user.
package seed

import (
	"context"
	"fmt"

	"github.com/pixelforo/gameblog/internal/models"
	"github.com/pixelforo/gameblog/internal/repositories"
)

func initialPosts() []models.PostInput {
	return []models.PostInput{
		{
			Title:    "Set legendario: Dragón Celestial",
			Content:  "El nuevo set legendario llega con efectos de aparición animados y un rastro de partículas propio. Disponible en la tienda durante dos semanas.",
			Category: "trajes",
		},
		{
			Title:    "Nuevos minijuegos en la sala de espera",
			Content:  "La sala de espera estrena tres minijuegos para las colas largas: carrera de obstáculos, tiro al blanco y rey de la colina.",
			Category: "ocio",
		},
		{
			Title:    "Notas del parche de temporada",
			Content:  "Ajustes de equilibrio en las armas de corto alcance, mejoras de rendimiento en mapas grandes y corrección del error de recarga fantasma.",
			Category: "noticias",
		},
	}
}

// Run creates the sample posts when the stored list is empty and makes sure
// the default users exist. Existing data is never touched.
func Run(ctx context.Context, postRepo repositories.PostRepository, userRepo repositories.UserRepository) error {
	if err := userRepo.EnsureDefaults(); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	posts, err := postRepo.GetPosts(ctx)
	if err != nil {
		return fmt.Errorf("seed posts: %w", err)
	}
	if len(posts) > 0 {
		return nil
	}

	for _, input := range initialPosts() {
		if _, err := postRepo.CreatePost(ctx, input); err != nil {
			return fmt.Errorf("seed posts: %w", err)
		}
	}
	return nil
}
