package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"mealprint/internal/core/climate"
	"mealprint/internal/core/engine"
)

// Recipe is a persisted recipe with its computed footprint. Totals are always
// recomputed from the ingredient set before saving; they are never patched in
// place.
type Recipe struct {
	ID                  string                      `json:"id"`
	Name                string                      `json:"name"`
	TotalCO2            float64                     `json:"total_co2"`
	Servings            float64                     `json:"servings"`
	CO2PerServing       float64                     `json:"co2_per_serving"`
	Source              string                      `json:"source"`
	OriginalIngredients string                      `json:"original_ingredients"`
	Rating              engine.Rating               `json:"rating"`
	Nutrition           engine.Nutrition            `json:"nutrition"`
	Ingredients         []engine.ResolvedIngredient `json:"ingredients"`
	Tags                []string                    `json:"tags"`
	CreatedAt           time.Time                   `json:"created_at"`
}

// Store wraps the sqlite database holding climate reference data and saved
// recipes.
type Store struct {
	db *sql.DB
}

// NewStore opens (and if needed initializes) the database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS climate_ingredients (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        name_en TEXT,
        name_dk TEXT,
        name_fr TEXT,
        co2_per_kg REAL NOT NULL,
        source_db TEXT NOT NULL,
        source_id TEXT,
        confidence TEXT NOT NULL,
        category TEXT,
        subcategory TEXT,
        energy_kj REAL,
        fat_g REAL,
        carbs_g REAL,
        protein_g REAL
    );

    CREATE TABLE IF NOT EXISTS recipes (
        id TEXT PRIMARY KEY,
        name TEXT NOT NULL,
        total_co2 REAL,
        servings REAL,
        co2_per_serving REAL,
        source TEXT,
        original_ingredients TEXT,
        rating_label TEXT,
        rating_color TEXT,
        rating_emoji TEXT,
        nutrition_kcal REAL,
        nutrition_fat REAL,
        nutrition_carbs REAL,
        nutrition_protein REAL,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );

    CREATE TABLE IF NOT EXISTS recipe_ingredients (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        recipe_id TEXT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
        original_line TEXT,
        item TEXT,
        amount REAL,
        unit TEXT,
        grams REAL,
        co2 REAL,
        source_db TEXT
    );

    CREATE TABLE IF NOT EXISTS recipe_tags (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        recipe_id TEXT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
        tag TEXT
    );

    CREATE INDEX IF NOT EXISTS idx_climate_source ON climate_ingredients(source_db);
    CREATE INDEX IF NOT EXISTS idx_recipe_ingredients_recipe ON recipe_ingredients(recipe_id);
    CREATE INDEX IF NOT EXISTS idx_recipe_tags_recipe ON recipe_tags(recipe_id);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// ReplaceClimateSource swaps out all records of one source in a single
// transaction, so a re-import never leaves a half-loaded source behind.
func (s *Store) ReplaceClimateSource(sourceDB string, records []climate.Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM climate_ingredients WHERE source_db = ?`, sourceDB); err != nil {
		return fmt.Errorf("failed to clear source %s: %w", sourceDB, err)
	}

	insert := `
        INSERT INTO climate_ingredients
        (name_en, name_dk, name_fr, co2_per_kg, source_db, source_id, confidence,
         category, subcategory, energy_kj, fat_g, carbs_g, protein_g)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	for _, rec := range records {
		_, err := tx.Exec(insert,
			nullString(rec.NameEN), nullString(rec.NameDK), nullString(rec.NameFR),
			rec.CO2PerKg, rec.SourceDB, nullString(rec.SourceID), string(rec.Confidence),
			nullString(rec.Category), nullString(rec.Subcategory),
			nullFloat(rec.EnergyKJ), nullFloat(rec.FatG), nullFloat(rec.CarbsG), nullFloat(rec.ProteinG))
		if err != nil {
			return fmt.Errorf("failed to insert climate ingredient: %w", err)
		}
	}

	return tx.Commit()
}

// LoadClimateIngredients reads the full reference dataset for the catalog
// snapshot.
func (s *Store) LoadClimateIngredients() ([]climate.Record, error) {
	rows, err := s.db.Query(`
        SELECT name_en, name_dk, name_fr, co2_per_kg, source_db, source_id, confidence,
               category, subcategory, energy_kj, fat_g, carbs_g, protein_g
        FROM climate_ingredients
        ORDER BY id
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query climate ingredients: %w", err)
	}
	defer rows.Close()

	var records []climate.Record
	for rows.Next() {
		var rec climate.Record
		var nameEN, nameDK, nameFR, sourceID, confidence, category, subcategory sql.NullString
		var energyKJ, fatG, carbsG, proteinG sql.NullFloat64

		if err := rows.Scan(&nameEN, &nameDK, &nameFR, &rec.CO2PerKg, &rec.SourceDB, &sourceID,
			&confidence, &category, &subcategory, &energyKJ, &fatG, &carbsG, &proteinG); err != nil {
			return nil, fmt.Errorf("failed to scan climate ingredient: %w", err)
		}

		rec.NameEN = nameEN.String
		rec.NameDK = nameDK.String
		rec.NameFR = nameFR.String
		rec.SourceID = sourceID.String
		rec.Confidence = climate.Tier(confidence.String)
		rec.Category = category.String
		rec.Subcategory = subcategory.String
		rec.EnergyKJ = energyKJ.Float64
		rec.FatG = fatG.Float64
		rec.CarbsG = carbsG.Float64
		rec.ProteinG = proteinG.Float64

		records = append(records, rec)
	}

	return records, rows.Err()
}

// SaveRecipe inserts a recipe with its ingredient rows and tags.
func (s *Store) SaveRecipe(r *Recipe) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
        INSERT INTO recipes (id, name, total_co2, servings, co2_per_serving, source, original_ingredients,
                             rating_label, rating_color, rating_emoji,
                             nutrition_kcal, nutrition_fat, nutrition_carbs, nutrition_protein)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `,
		r.ID, r.Name, r.TotalCO2, r.Servings, r.CO2PerServing, r.Source, r.OriginalIngredients,
		r.Rating.Label, r.Rating.Color, r.Rating.Emoji,
		r.Nutrition.Kcal, r.Nutrition.Fat, r.Nutrition.Carbs, r.Nutrition.Protein)
	if err != nil {
		return fmt.Errorf("failed to insert recipe: %w", err)
	}

	if err := insertChildren(tx, r); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateRecipe replaces a stored recipe wholesale: header fields are updated
// and all ingredient rows and tags are rewritten.
func (s *Store) UpdateRecipe(r *Recipe) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
        UPDATE recipes SET
            name = ?, total_co2 = ?, servings = ?, co2_per_serving = ?, source = ?,
            original_ingredients = ?, rating_label = ?, rating_color = ?, rating_emoji = ?,
            nutrition_kcal = ?, nutrition_fat = ?, nutrition_carbs = ?, nutrition_protein = ?
        WHERE id = ?
    `,
		r.Name, r.TotalCO2, r.Servings, r.CO2PerServing, r.Source,
		r.OriginalIngredients, r.Rating.Label, r.Rating.Color, r.Rating.Emoji,
		r.Nutrition.Kcal, r.Nutrition.Fat, r.Nutrition.Carbs, r.Nutrition.Protein,
		r.ID)
	if err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	if _, err := tx.Exec(`DELETE FROM recipe_ingredients WHERE recipe_id = ?`, r.ID); err != nil {
		return fmt.Errorf("failed to clear recipe ingredients: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM recipe_tags WHERE recipe_id = ?`, r.ID); err != nil {
		return fmt.Errorf("failed to clear recipe tags: %w", err)
	}

	if err := insertChildren(tx, r); err != nil {
		return err
	}

	return tx.Commit()
}

func insertChildren(tx *sql.Tx, r *Recipe) error {
	for _, ing := range r.Ingredients {
		_, err := tx.Exec(`
            INSERT INTO recipe_ingredients (recipe_id, original_line, item, amount, unit, grams, co2, source_db)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        `, r.ID, ing.OriginalLine, ing.Item, ing.Amount, ing.Unit, ing.Grams, ing.CO2, ing.SourceDB)
		if err != nil {
			return fmt.Errorf("failed to insert recipe ingredient: %w", err)
		}
	}

	for _, tag := range r.Tags {
		if _, err := tx.Exec(`INSERT INTO recipe_tags (recipe_id, tag) VALUES (?, ?)`, r.ID, tag); err != nil {
			return fmt.Errorf("failed to insert recipe tag: %w", err)
		}
	}

	return nil
}

// GetRecipe fetches a recipe by ID, or nil when it does not exist.
func (s *Store) GetRecipe(id string) (*Recipe, error) {
	r := &Recipe{ID: id}
	err := s.db.QueryRow(`
        SELECT name, total_co2, servings, co2_per_serving, source, original_ingredients,
               rating_label, rating_color, rating_emoji,
               nutrition_kcal, nutrition_fat, nutrition_carbs, nutrition_protein, created_at
        FROM recipes WHERE id = ?
    `, id).Scan(
		&r.Name, &r.TotalCO2, &r.Servings, &r.CO2PerServing, &r.Source, &r.OriginalIngredients,
		&r.Rating.Label, &r.Rating.Color, &r.Rating.Emoji,
		&r.Nutrition.Kcal, &r.Nutrition.Fat, &r.Nutrition.Carbs, &r.Nutrition.Protein, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query recipe: %w", err)
	}

	if err := s.loadChildren(r); err != nil {
		return nil, err
	}

	return r, nil
}

// ListRecipes returns recipes newest first.
func (s *Store) ListRecipes(limit int) ([]*Recipe, error) {
	query := `
        SELECT id, name, total_co2, servings, co2_per_serving, source, original_ingredients,
               rating_label, rating_color, rating_emoji,
               nutrition_kcal, nutrition_fat, nutrition_carbs, nutrition_protein, created_at
        FROM recipes ORDER BY created_at DESC
    `
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	var recipes []*Recipe
	for rows.Next() {
		r := &Recipe{}
		if err := rows.Scan(
			&r.ID, &r.Name, &r.TotalCO2, &r.Servings, &r.CO2PerServing, &r.Source, &r.OriginalIngredients,
			&r.Rating.Label, &r.Rating.Color, &r.Rating.Emoji,
			&r.Nutrition.Kcal, &r.Nutrition.Fat, &r.Nutrition.Carbs, &r.Nutrition.Protein, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, r := range recipes {
		if err := s.loadChildren(r); err != nil {
			return nil, err
		}
	}

	return recipes, nil
}

// DeleteRecipe removes a recipe with its ingredient rows and tags. Children
// are deleted explicitly; foreign-key enforcement is off by default in sqlite.
func (s *Store) DeleteRecipe(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM recipe_ingredients WHERE recipe_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete recipe ingredients: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM recipe_tags WHERE recipe_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete recipe tags: %w", err)
	}

	res, err := tx.Exec(`DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	return tx.Commit()
}

func (s *Store) loadChildren(r *Recipe) error {
	rows, err := s.db.Query(`
        SELECT original_line, item, amount, unit, grams, co2, source_db
        FROM recipe_ingredients WHERE recipe_id = ? ORDER BY id
    `, r.ID)
	if err != nil {
		return fmt.Errorf("failed to query recipe ingredients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ing engine.ResolvedIngredient
		if err := rows.Scan(&ing.OriginalLine, &ing.Item, &ing.Amount, &ing.Unit, &ing.Grams, &ing.CO2, &ing.SourceDB); err != nil {
			return fmt.Errorf("failed to scan recipe ingredient: %w", err)
		}
		r.Ingredients = append(r.Ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	tagRows, err := s.db.Query(`SELECT tag FROM recipe_tags WHERE recipe_id = ? ORDER BY id`, r.ID)
	if err != nil {
		return fmt.Errorf("failed to query recipe tags: %w", err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var tag string
		if err := tagRows.Scan(&tag); err != nil {
			return fmt.Errorf("failed to scan recipe tag: %w", err)
		}
		r.Tags = append(r.Tags, tag)
	}

	return tagRows.Err()
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullFloat(f float64) interface{} {
	if f == 0 {
		return nil
	}
	return f
}
