package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/ahaven/authors-haven-api/internal/config"
	"github.com/ahaven/authors-haven-api/internal/database"
	"github.com/ahaven/authors-haven-api/internal/logger"
	"github.com/ahaven/authors-haven-api/internal/model"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

// userCmd 用户管理命令
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "用户管理命令",
	Long:  `用户管理相关的命令，包括创建超级管理员、列出用户、重置密码等`,
}

// createAdminCmd 创建超级管理员命令
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "创建超级管理员",
	Long:  `交互式创建超级管理员用户`,
	Run: func(cmd *cobra.Command, args []string) {
		createAdminUser()
	},
}

// listUsersCmd 列出用户命令
var listUsersCmd = &cobra.Command{
	Use:   "list",
	Short: "列出用户",
	Long:  `列出系统中的用户`,
	Run: func(cmd *cobra.Command, args []string) {
		listAllUsers()
	},
}

// resetPasswordCmd 重置用户密码命令
var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password [username]",
	Short: "重置用户密码",
	Long:  `重置指定用户的密码`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		resetUserPassword(args[0])
	},
}

func init() {
	userCmd.AddCommand(createAdminCmd)
	userCmd.AddCommand(listUsersCmd)
	userCmd.AddCommand(resetPasswordCmd)

	rootCmd.AddCommand(userCmd)
}

// initForUserCmd 用户命令的最小初始化
func initForUserCmd() {
	if err := config.Init(configPath); err != nil {
		fmt.Printf("配置初始化失败: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(); err != nil {
		fmt.Printf("日志初始化失败: %v\n", err)
		os.Exit(1)
	}
}

// readPassword 不回显地读取密码
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	data, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// createAdminUser 交互式创建超级管理员
func createAdminUser() {
	initForUserCmd()
	db := database.GetDB()

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("用户名: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)

	fmt.Print("邮箱: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)

	password, err := readPassword("密码: ")
	if err != nil {
		fmt.Printf("读取密码失败: %v\n", err)
		os.Exit(1)
	}

	if username == "" || email == "" || len(password) < 8 {
		fmt.Println("用户名和邮箱不能为空，密码至少8位")
		os.Exit(1)
	}

	var count int64
	db.Model(&model.User{}).Where("username = ? OR email = ?", username, email).Count(&count)
	if count > 0 {
		fmt.Println("用户名或邮箱已存在")
		os.Exit(1)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Printf("密码加密失败: %v\n", err)
		os.Exit(1)
	}

	user := model.User{
		Username:   username,
		Email:      email,
		Password:   string(hashed),
		Role:       model.RoleSuperAdmin,
		IsVerified: 1,
	}
	if err := db.Create(&user).Error; err != nil {
		fmt.Printf("创建用户失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("超级管理员 %s 创建成功 (ID=%d)\n", user.Username, user.ID)
}

// listAllUsers 列出系统用户
func listAllUsers() {
	initForUserCmd()
	db := database.GetDB()

	var users []model.User
	if err := db.Order("id ASC").Find(&users).Error; err != nil {
		fmt.Printf("查询用户失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-6s %-20s %-30s %-12s %s\n", "ID", "用户名", "邮箱", "角色", "已验证")
	for _, u := range users {
		verified := "否"
		if u.IsVerified == 1 {
			verified = "是"
		}
		fmt.Printf("%-6d %-20s %-30s %-12s %s\n", u.ID, u.Username, u.Email, u.Role, verified)
	}
	fmt.Printf("共 %d 个用户\n", len(users))
}

// resetUserPassword 重置指定用户的密码
func resetUserPassword(username string) {
	initForUserCmd()
	db := database.GetDB()

	var user model.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		fmt.Printf("用户不存在: %s\n", username)
		os.Exit(1)
	}

	password, err := readPassword("新密码: ")
	if err != nil {
		fmt.Printf("读取密码失败: %v\n", err)
		os.Exit(1)
	}
	if len(password) < 8 {
		fmt.Println("密码至少8位")
		os.Exit(1)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Printf("密码加密失败: %v\n", err)
		os.Exit(1)
	}

	if err := db.Model(&user).Update("password", string(hashed)).Error; err != nil {
		fmt.Printf("重置密码失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("用户 %s 的密码已重置\n", username)
}
