package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrNotSignedIn = errors.New("you need to log in first ('login', 'register' or 'oauth')")

type command struct {
	name    string
	usage   string
	summary string
	auth    bool
	minArgs int
	run     func(a *App, ctx context.Context, args []string) error
}

var commands = []command{
	{name: "register", summary: "create an account", run: (*App).Register},
	{name: "login", summary: "sign in with email and password", run: (*App).Login},
	{name: "oauth", summary: "sign in with Google", run: (*App).OAuth},
	{name: "forgot", summary: "request a password reset email", run: (*App).ForgotPassword},
	{name: "resetpw", summary: "set a new password with a reset token", run: (*App).ResetPassword},
	{name: "logout", summary: "sign out", auth: true, run: (*App).Logout},
	{name: "whoami", summary: "show the signed-in user", auth: true, run: (*App).WhoAmI},

	{name: "posts", usage: "[page]", summary: "list posts", run: (*App).ListPosts},
	{name: "post", usage: "<id>", summary: "show a post with its comments", minArgs: 1, run: (*App).ShowPost},
	{name: "newpost", summary: "write a post", auth: true, run: (*App).NewPost},
	{name: "editpost", usage: "<id>", summary: "edit one of your posts", auth: true, minArgs: 1, run: (*App).EditPost},
	{name: "delpost", usage: "<id>", summary: "delete one of your posts", auth: true, minArgs: 1, run: (*App).DeletePost},
	{name: "like", usage: "<postId>", summary: "like a post", auth: true, minArgs: 1, run: (*App).LikePost},
	{name: "dislike", usage: "<postId>", summary: "dislike a post", auth: true, minArgs: 1, run: (*App).DislikePost},

	{name: "comments", usage: "<postId>", summary: "list comments of a post", minArgs: 1, run: (*App).ListComments},
	{name: "comment", usage: "<postId>", summary: "comment on a post", auth: true, minArgs: 1, run: (*App).NewComment},
	{name: "reply", usage: "<commentId>", summary: "reply to a comment", auth: true, minArgs: 1, run: (*App).ReplyComment},
	{name: "editcomment", usage: "<id>", summary: "edit one of your comments", auth: true, minArgs: 1, run: (*App).EditComment},
	{name: "delcomment", usage: "<id>", summary: "delete one of your comments", auth: true, minArgs: 1, run: (*App).DeleteComment},
	{name: "likecomment", usage: "<id>", summary: "like a comment", auth: true, minArgs: 1, run: (*App).LikeComment},
	{name: "dislikecomment", usage: "<id>", summary: "dislike a comment", auth: true, minArgs: 1, run: (*App).DislikeComment},

	{name: "courses", usage: "[page]", summary: "list courses", run: (*App).ListCourses},
	{name: "course", usage: "<id>", summary: "show a course with its modules", minArgs: 1, run: (*App).ShowCourse},
	{name: "mycourses", summary: "list courses you created", auth: true, run: (*App).MyCourses},
	{name: "newcourse", summary: "create a course", auth: true, run: (*App).NewCourse},
	{name: "editcourse", usage: "<id>", summary: "edit one of your courses", auth: true, minArgs: 1, run: (*App).EditCourse},
	{name: "delcourse", usage: "<id>", summary: "delete one of your courses", auth: true, minArgs: 1, run: (*App).DeleteCourse},
	{name: "search", usage: "<text>", summary: "find courses with AI search", run: (*App).SearchCourses},
	{name: "enroll", usage: "<courseId>", summary: "enroll in a course", auth: true, minArgs: 1, run: (*App).Enroll},
	{name: "unenroll", usage: "<courseId>", summary: "leave a course", auth: true, minArgs: 1, run: (*App).Unenroll},
	{name: "mylearning", summary: "courses you are enrolled in", auth: true, run: (*App).MyLearning},
	{name: "toggle", usage: "<courseId> <lessonId>", summary: "mark a lesson done or not done", auth: true, minArgs: 2, run: (*App).ToggleLesson},

	{name: "profile", usage: "[userId]", summary: "show a profile", run: (*App).ShowProfile},
	{name: "editprofile", summary: "edit your profile", auth: true, run: (*App).EditProfile},
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// Execute runs one command. Commands that need a session are refused while
// signed out.
func (a *App) Execute(ctx context.Context, name string, args []string) error {
	c, ok := lookupCommand(strings.ToLower(name))
	if !ok {
		return fmt.Errorf("unknown command %q (type 'help')", name)
	}
	if c.auth && !a.isLoggedIn() {
		return ErrNotSignedIn
	}
	if len(args) < c.minArgs {
		return fmt.Errorf("usage: %s %s", c.name, c.usage)
	}

	a.logger.Debug(ctx, "command", "name", c.name, "args", len(args))
	return c.run(a, ctx, args)
}

// Help lists the commands usable in the current state.
func (a *App) Help() string {
	loggedIn := a.isLoggedIn()

	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, c := range commands {
		if c.auth && !loggedIn {
			continue
		}
		if loggedIn && (c.name == "login" || c.name == "register" || c.name == "oauth") {
			continue
		}
		fmt.Fprintf(&b, "  %-28s %s\n", strings.TrimSpace(c.name+" "+c.usage), c.summary)
	}
	fmt.Fprintf(&b, "  %-28s %s\n", "help", "show this list")
	fmt.Fprintf(&b, "  %-28s %s", "exit", "leave the program")
	return b.String()
}
