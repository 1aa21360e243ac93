package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/frostlog/internal/config"
	"github.com/frostlog/internal/db"
	"github.com/frostlog/internal/service"
	"gorm.io/gorm"
)

// 示例数据生成器：往本地数据库写入演示用的分类、标签、资料和文章。
// 已存在的数据会被跳过，重复执行是安全的。
func main() {
	cfg := config.Load()
	gdb, err := db.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	fmt.Println("开始生成示例数据...")

	if err := db.EnsureUser(gdb, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatal("创建管理员失败:", err)
	}

	seedCategories(gdb)
	seedTags(gdb)
	seedProfile(gdb)
	seedPosts(gdb)

	fmt.Println("示例数据生成完成！")
	fmt.Printf("管理员: %s\n", cfg.AdminUsername)
}

func seedCategories(gdb *gorm.DB) {
	categories := service.NewCategoryService(gdb)
	for _, c := range []struct{ name, description string }{
		{"技术", "工程实践与技术笔记"},
		{"生活", "日常与随想"},
		{"哲学", "阅读与思考"},
	} {
		if _, err := categories.Create(c.name, c.description); err != nil {
			if errors.Is(err, service.ErrCategoryExists) {
				continue
			}
			log.Fatal("创建分类失败:", err)
		}
	}
	fmt.Println("✅ 分类创建完成")
}

func seedTags(gdb *gorm.DB) {
	tags := service.NewTagService(gdb)
	for _, name := range []string{"Go", "Web开发", "数据库", "随笔", "海洋"} {
		if _, err := tags.Create(name); err != nil {
			if errors.Is(err, service.ErrTagExists) {
				continue
			}
			log.Fatal("创建标签失败:", err)
		}
	}
	fmt.Println("✅ 标签创建完成")
}

func seedProfile(gdb *gorm.DB) {
	profiles := service.NewProfileService(gdb)
	if _, err := profiles.Get(); err == nil {
		fmt.Println("个人资料已存在，跳过创建")
		return
	}

	name := "霜雪旧曾谙"
	bio := "计算机专业学生，热爱二次元、海洋与哲学。"
	location := "中国"
	skills := []string{"Go", "Python", "前端"}
	interests := []string{"二次元", "海洋探索", "哲学"}
	if _, err := profiles.Update(service.ProfileUpdate{
		Name:      &name,
		Bio:       &bio,
		Location:  &location,
		Skills:    &skills,
		Interests: &interests,
	}); err != nil {
		log.Fatal("创建个人资料失败:", err)
	}
	fmt.Println("✅ 个人资料创建完成")
}

func seedPosts(gdb *gorm.DB) {
	posts := service.NewPostService(gdb)
	if count, err := posts.Count(); err != nil {
		log.Fatal("统计文章失败:", err)
	} else if count > 0 {
		fmt.Println("文章已存在，跳过创建")
		return
	}

	samples := []service.PostInput{
		{
			Title:    "用 Go 重写博客后端的一点记录",
			Content:  "## 为什么是 Go\n\n静态类型、部署简单，一个二进制就能跑起来。\n\n这篇记录迁移过程中的取舍：ORM 的选择、slug 的生成策略，以及如何让草稿和发布状态互不干扰。",
			Excerpt:  "从动态语言迁移到 Go 的过程与取舍。",
			Status:   db.PostStatusPublished,
			Category: "技术",
			Tags:     []string{"Go", "Web开发"},
		},
		{
			Title:    "SQLite 够用了",
			Content:  "个人博客的写入量一天不过几次，SQLite 的单文件模型反而是优势：备份就是复制文件，迁移就是搬文件。\n\n唯一需要注意的是并发写入的锁，不过对这个量级完全不构成问题。",
			Excerpt:  "个人站点为什么不需要更重的数据库。",
			Status:   db.PostStatusPublished,
			Category: "技术",
			Tags:     []string{"数据库"},
		},
		{
			Title:    "海风与代码",
			Content:  "周末去了海边。浪打过来的时候突然想明白了一个困扰很久的抽象边界问题。\n\n有时候离开屏幕才是最好的调试方式。",
			Status:   db.PostStatusPublished,
			Category: "生活",
			Tags:     []string{"随笔", "海洋"},
		},
		{
			Title:    "忒修斯之船与重构",
			Content:  "当一个系统的每一行代码都被替换过之后，它还是原来的系统吗？\n\n重构的意义或许不在于代码本身，而在于维护它的人对它的理解被重新建立了一遍。",
			Excerpt:  "从一个古老的思想实验看软件重构。",
			Status:   db.PostStatusPublished,
			Category: "哲学",
			Tags:     []string{"随笔"},
		},
		{
			Title:   "写作中的草稿",
			Content: "这是一篇还没想好怎么结尾的草稿。",
			Status:  db.PostStatusDraft,
		},
	}

	for _, input := range samples {
		if _, err := posts.Create(input); err != nil {
			log.Fatal("创建文章失败:", err)
		}
	}
	fmt.Printf("✅ %d 篇示例文章创建完成\n", len(samples))
}
