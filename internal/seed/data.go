package seed

import (
	"teslo/internal/models"
	"teslo/internal/services"
)

type seedUser struct {
	Email    string
	FullName string
	Password string
	Roles    []models.Role
}

var initialUsers = []seedUser{
	{
		Email:    "test1@google.com",
		FullName: "Test One",
		Password: "Abc123",
		Roles:    []models.Role{models.RoleAdmin},
	},
	{
		Email:    "test2@google.com",
		FullName: "Test Two",
		Password: "Abc123",
		Roles:    []models.Role{models.RoleUser, models.RoleSuperUser},
	},
}

func description(s string) *string { return &s }

var initialProducts = []services.CreateProductInput{
	{
		Title:       "Men's Chill Crew Neck Sweatshirt",
		Description: description("Introducing the Tesla Chill Collection. The Men's Chill Crew Neck Sweatshirt has a premium, heavyweight exterior and soft fleece interior."),
		Price:       75,
		Stock:       7,
		Sizes:       []string{"XS", "S", "M", "L", "XL", "XXL"},
		Gender:      "men",
		Tags:        []string{"sweatshirt"},
		Images:      []string{"1740176-00-A_0_2000.jpg", "1740176-00-A_1.jpg"},
	},
	{
		Title:       "Men's Quilted Shirt Jacket",
		Description: description("The Men's Quilted Shirt Jacket features a uniquely fit, quilted design for warmth and mobility in cold weather seasons."),
		Price:       200,
		Stock:       5,
		Sizes:       []string{"XS", "S", "M", "XL", "XXL"},
		Gender:      "men",
		Tags:        []string{"jacket"},
		Images:      []string{"1740507-00-A_0_2000.jpg", "1740507-00-A_1.jpg"},
	},
	{
		Title:       "Men's Raven Lightweight Zip Up Bomber Jacket",
		Description: description("Introducing the Tesla Raven Collection. The Men's Raven Lightweight Zip Up Bomber has a premium, modern silhouette."),
		Price:       130,
		Stock:       10,
		Sizes:       []string{"S", "M", "L", "XL", "XXL"},
		Gender:      "men",
		Tags:        []string{"shirt"},
		Images:      []string{"1740250-00-A_0_2000.jpg", "1740250-00-A_1.jpg"},
	},
	{
		Title:       "Women's Cropped Puffer Jacket",
		Description: description("The Women's Cropped Puffer Jacket features a uniquely cropped silhouette for the perfect, modern style."),
		Price:       225,
		Stock:       85,
		Sizes:       []string{"XS", "S", "M"},
		Gender:      "women",
		Tags:        []string{"hoodie"},
		Images:      []string{"1740535-00-A_0_2000.jpg", "1740535-00-A_1.jpg"},
	},
	{
		Title:       "Women's Chill Half Zip Cropped Hoodie",
		Description: description("The Women's Chill Half Zip Cropped Hoodie has a premium, soft fleece interior and a cropped silhouette."),
		Price:       130,
		Stock:       10,
		Sizes:       []string{"XS", "S", "M", "L", "XL", "XXL"},
		Gender:      "women",
		Tags:        []string{"hoodie"},
		Images:      []string{"1740226-00-A_0_2000.jpg", "1740226-00-A_1.jpg"},
	},
	{
		Title:       "Kids Cybertruck Long Sleeve Tee",
		Description: description("Designed for fit, comfort and style, the Kids Cybertruck Graffiti Long Sleeve Tee features a water-based Cybertruck graffiti wordmark."),
		Price:       30,
		Stock:       10,
		Sizes:       []string{"XS", "S", "M"},
		Gender:      "kid",
		Tags:        []string{"shirt"},
		Images:      []string{"1742694-00-A_1_2000.jpg", "1742694-00-A_3.jpg"},
	},
	{
		Title:       "Kids Scribble T Logo Tee",
		Description: description("The Kids Scribble T Logo Tee is made from premium 100% cotton and features a Tesla T sketched logo."),
		Price:       25,
		Stock:       0,
		Sizes:       []string{"XS", "S", "M"},
		Gender:      "kid",
		Tags:        []string{"shirt"},
		Images:      []string{"8529312-00-A_0_2000.jpg", "8529312-00-A_1.jpg"},
	},
	{
		Title:       "Tesla Cap",
		Description: description("The Tesla Cap is made from premium cotton twill with a structured front panel and an adjustable back."),
		Price:       30,
		Stock:       50,
		Sizes:       []string{"M", "L"},
		Gender:      "unisex",
		Tags:        []string{"hat"},
		Images:      []string{"1657932-00-A_0_2000.jpg"},
	},
}
