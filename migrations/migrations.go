package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"confidencevoice/internal/retry"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

type table struct {
	name  string
	query string
}

// tables are created in order; later tables reference earlier ones.
var tables = []table{
	{"users", `
		CREATE TABLE IF NOT EXISTS users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(50) NOT NULL,
			email VARCHAR(100) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			role ENUM('user', 'admin') NOT NULL DEFAULT 'user',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`},
	{"categories", `
		CREATE TABLE IF NOT EXISTS categories (
			cat_id INT AUTO_INCREMENT PRIMARY KEY,
			category_name VARCHAR(100) NOT NULL UNIQUE,
			description TEXT,
			status ENUM('Active', 'Inactive') NOT NULL DEFAULT 'Active'
		);
	`},
	{"books", `
		CREATE TABLE IF NOT EXISTS books (
			book_id INT AUTO_INCREMENT PRIMARY KEY,
			book_name VARCHAR(255) NOT NULL,
			category_id INT NOT NULL,
			description TEXT,
			author VARCHAR(255) NOT NULL,
			publisher VARCHAR(255),
			price DECIMAL(10,2) NOT NULL,
			status ENUM('Active', 'Inactive') NOT NULL DEFAULT 'Active',
			isbn VARCHAR(20),
			cover_image VARCHAR(255),
			FOREIGN KEY (category_id) REFERENCES categories(cat_id)
		);
	`},
	{"cart", `
		CREATE TABLE IF NOT EXISTS cart (
			cart_id INT AUTO_INCREMENT PRIMARY KEY,
			user_id INT NOT NULL,
			book_id INT NOT NULL,
			quantity INT NOT NULL DEFAULT 1 CHECK (quantity >= 1),
			price DECIMAL(10,2) NOT NULL,
			UNIQUE KEY cart_user_book (user_id, book_id),
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
			FOREIGN KEY (book_id) REFERENCES books(book_id) ON DELETE CASCADE
		);
	`},
	{"orders", `
		CREATE TABLE IF NOT EXISTS orders (
			order_id VARCHAR(40) PRIMARY KEY,
			date DATE NOT NULL,
			user_id INT NOT NULL,
			net_total DECIMAL(10,2) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'Pending',
			FOREIGN KEY (user_id) REFERENCES users(id)
		);
	`},
	{"order_transactions", `
		CREATE TABLE IF NOT EXISTS order_transactions (
			id INT AUTO_INCREMENT PRIMARY KEY,
			order_id VARCHAR(40) NOT NULL,
			user_id INT NOT NULL,
			book_id INT NOT NULL,
			description VARCHAR(255),
			price DECIMAL(10,2) NOT NULL,
			quantity INT NOT NULL DEFAULT 1,
			FOREIGN KEY (order_id) REFERENCES orders(order_id) ON DELETE CASCADE
		);
	`},
	{"payments", `
		CREATE TABLE IF NOT EXISTS payments (
			id INT AUTO_INCREMENT PRIMARY KEY,
			user_id INT NOT NULL,
			book_id INT NULL,
			payment_number VARCHAR(40) NOT NULL,
			status VARCHAR(20) NOT NULL,
			date DATE NOT NULL,
			price DECIMAL(10,2) NOT NULL,
			payment_method VARCHAR(20) NOT NULL,
			full_name VARCHAR(100) NOT NULL,
			phone_number VARCHAR(20) NOT NULL DEFAULT '',
			billing_address TEXT NOT NULL,
			pincode VARCHAR(10) NOT NULL,
			card_number VARCHAR(19),
			card_holder_name VARCHAR(100),
			card_expiry_month VARCHAR(2),
			card_expiry_year VARCHAR(4),
			upi_id VARCHAR(100),
			bank_name VARCHAR(100),
			account_number VARCHAR(18),
			ifsc_code VARCHAR(11),
			FOREIGN KEY (user_id) REFERENCES users(id)
		);
	`},
	{"contacts", `
		CREATE TABLE IF NOT EXISTS contacts (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(100) NOT NULL,
			subject VARCHAR(255) NOT NULL,
			message TEXT NOT NULL,
			is_read BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`},
	{"emotion_results", `
		CREATE TABLE IF NOT EXISTS emotion_results (
			id INT AUTO_INCREMENT PRIMARY KEY,
			user_id INT NOT NULL,
			confident_percentage FLOAT NOT NULL DEFAULT 0,
			visual_confidence FLOAT NOT NULL DEFAULT 0,
			verbal_confidence FLOAT NOT NULL DEFAULT 0,
			overall_confidence FLOAT NOT NULL DEFAULT 0,
			transcribed_speech TEXT,
			timestamp TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`},
	{"audio_results", `
		CREATE TABLE IF NOT EXISTS audio_results (
			id INT AUTO_INCREMENT PRIMARY KEY,
			user_id INT NOT NULL,
			pronunciation TEXT,
			suggestion TEXT,
			most_repeated_word VARCHAR(100),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`},
	{"analysis_results", `
		CREATE TABLE IF NOT EXISTS analysis_results (
			id INT AUTO_INCREMENT PRIMARY KEY,
			user_id INT NOT NULL,
			pronunciation_assessment TEXT,
			most_repeated_word VARCHAR(100),
			general_pronunciation_suggestion TEXT,
			confident_percentage FLOAT NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`},
}

// AutoMigrate creates every table that does not exist yet, retrying each one under
// policy. The first table that still fails stops the migration.
func AutoMigrate(ctx context.Context, db *sql.DB, policy retry.Policy) error {
	for _, t := range tables {
		err := policy.Do(ctx, func(ctx context.Context) error {
			_, err := db.ExecContext(ctx, t.query)
			return err
		})
		if err != nil {
			return fmt.Errorf("create table %s: %w", t.name, err)
		}
		logger.Info().Msgf("Table %s ready", t.name)
	}
	return nil
}
