package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadFile читает настройки из YAML файла.
// Отсутствующие в файле поля получают значения по умолчанию.
func LoadFile(path string) (BuildSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BuildSettings{}, fmt.Errorf("чтение %s: %w", path, err)
	}

	s := Defaults()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return BuildSettings{}, fmt.Errorf("разбор %s: %w", path, err)
	}
	return s, nil
}

// SaveFile записывает настройки в YAML файл, создавая каталог при необходимости
func SaveFile(path string, s BuildSettings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("создание каталога %s: %w", dir, err)
		}
	}
	return os.WriteFile(path, data, 0644)
}
