package main

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"cvsite/internal/auth"
	"cvsite/internal/config"
	"cvsite/internal/database"
)

// admin 创建账号或重置已有账号的密码。数据库连接读取与 api 相同的环境变量。
func main() {
	var (
		emailFlag = flag.String("email", "", "账号邮箱（必填）")
		name      = flag.String("name", "", "显示名称（创建时使用，默认取邮箱前缀）")
		password  = flag.String("password", "", "密码（可选，留空时随机生成并打印一次）")
		reset     = flag.Bool("reset", false, "账号已存在时重置密码")
	)
	flag.Parse()

	addr := auth.NormalizeEmail(*emailFlag)
	if addr == "" || !strings.Contains(addr, "@") {
		log.Fatal("missing or invalid flag: --email")
	}

	dbCfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatalf("load database config: %v", err)
	}
	db, err := database.InitDatabase(dbCfg)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	plain := *password
	generated := plain == ""
	if generated {
		if plain, err = generateRandomPassword(18); err != nil {
			log.Fatalf("generate password: %v", err)
		}
	}
	if len(plain) < 8 {
		log.Fatal("password must be at least 8 characters")
	}
	hashed, err := auth.HashPassword(plain)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	var existing database.User
	switch err := db.Where("email = ?", addr).First(&existing).Error; {
	case err == nil:
		if !*reset {
			log.Fatalf("user %q already exists (use --reset to change the password)", addr)
		}
		if err := db.Model(&existing).Update("password_hash", hashed).Error; err != nil {
			log.Fatalf("reset password: %v", err)
		}
		fmt.Printf("已重置账号密码：%s\n", addr)
	case errors.Is(err, gorm.ErrRecordNotFound):
		displayName := strings.TrimSpace(*name)
		if displayName == "" {
			displayName = strings.SplitN(addr, "@", 2)[0]
		}
		user := database.User{Email: addr, Name: displayName, PasswordHash: hashed}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("create user: %v", err)
		}
		fmt.Printf("已创建账号：%s (id=%d)\n", addr, user.ID)
	default:
		log.Fatalf("query user: %v", err)
	}

	if generated {
		fmt.Printf("密码: %s\n", plain)
		fmt.Printf("提示：该密码仅显示一次。\n")
	}
}

func generateRandomPassword(bytesLen int) (string, error) {
	buf := make([]byte, bytesLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
