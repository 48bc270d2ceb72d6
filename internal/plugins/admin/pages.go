package admin

// The admin panel is two self-contained HTML documents. All dynamic data
// comes from the JSON management API via fetch, so there is nothing for a
// server-side template engine to interpolate.

// adminLoginHTML is the login page served at /admin/login.
const adminLoginHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Admin Login</title>
    <meta charset="utf-8">
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; background: #f5f5f5; }
        .login-container { max-width: 400px; margin: 100px auto; background: white; padding: 30px; border-radius: 8px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        .form-group { margin-bottom: 20px; }
        label { display: block; margin-bottom: 5px; font-weight: bold; }
        input { width: 100%; padding: 10px; border: 1px solid #ddd; border-radius: 4px; box-sizing: border-box; }
        button { width: 100%; padding: 12px; background: #007bff; color: white; border: none; border-radius: 4px; cursor: pointer; }
        button:hover { background: #0056b3; }
        .error { color: red; margin-top: 10px; }
    </style>
</head>
<body>
    <div class="login-container">
        <h2>Admin Login</h2>
        <form id="loginForm">
            <div class="form-group">
                <label>Username:</label>
                <input type="text" name="username" required>
            </div>
            <div class="form-group">
                <label>Password:</label>
                <input type="password" name="password" required>
            </div>
            <button type="submit">Sign in</button>
        </form>
        <div id="error" class="error"></div>
    </div>
    <script>
        document.getElementById('loginForm').addEventListener('submit', async (e) => {
            e.preventDefault();
            const formData = new FormData(e.target);
            try {
                const response = await fetch('/api/admin/login', {
                    method: 'POST',
                    headers: { 'Content-Type': 'application/json' },
                    body: JSON.stringify({
                        username: formData.get('username'),
                        password: formData.get('password')
                    })
                });
                if (response.ok) {
                    window.location.href = '/admin/dashboard';
                } else {
                    document.getElementById('error').textContent = 'Login failed';
                }
            } catch (error) {
                document.getElementById('error').textContent = 'Network error';
            }
        });
    </script>
</body>
</html>`

// adminDashboardHTML is the user management dashboard served at
// /admin/dashboard.
const adminDashboardHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Admin Dashboard</title>
    <meta charset="utf-8">
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 0; }
        .header { background: #333; color: white; padding: 15px; display: flex; justify-content: space-between; align-items: center; }
        .header button { padding: 8px 16px; border: none; border-radius: 4px; cursor: pointer; }
        .main { padding: 20px; }
        .content { background: white; padding: 20px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        table { width: 100%; border-collapse: collapse; margin-top: 20px; }
        th, td { padding: 12px; text-align: left; border-bottom: 1px solid #ddd; }
        th { background: #f8f9fa; }
        .btn { padding: 8px 16px; border: none; border-radius: 4px; cursor: pointer; margin: 2px; }
        .btn-danger { background: #dc3545; color: white; }
        .btn-warning { background: #ffc107; color: black; }
    </style>
</head>
<body>
    <div class="header">
        <h2>AI Tool Station Admin</h2>
        <button onclick="logout()">Log out</button>
    </div>
    <div class="main">
        <div class="content">
            <h3>Users</h3>
            <div id="userList"></div>
        </div>
    </div>
    <script>
        async function loadUsers() {
            try {
                const response = await fetch('/api/admin/users');
                if (response.status === 401) {
                    window.location.href = '/admin/login';
                    return;
                }
                const data = await response.json();
                if (!data.success) return;
                const rows = data.users.map(user =>
                    '<tr>' +
                    '<td>' + user.id + '</td>' +
                    '<td>' + user.email + '</td>' +
                    '<td>' + new Date(user.created_at).toLocaleString() + '</td>' +
                    '<td>' + user.api_calls_remaining + '</td>' +
                    '<td>' +
                    '<button class="btn btn-warning" onclick="resetUserCalls(\'' + user.id + '\')">Reset calls</button>' +
                    '<button class="btn btn-danger" onclick="deleteUser(\'' + user.id + '\')">Delete</button>' +
                    '</td>' +
                    '</tr>').join('');
                document.getElementById('userList').innerHTML =
                    '<table><thead><tr>' +
                    '<th>ID</th><th>Email</th><th>Registered</th><th>Calls remaining</th><th>Actions</th>' +
                    '</tr></thead><tbody>' + rows + '</tbody></table>';
            } catch (error) {
                console.error('Failed to load users:', error);
            }
        }

        async function resetUserCalls(userId) {
            if (!confirm('Reset this user\'s remaining calls?')) return;
            const response = await fetch('/api/admin/users/' + userId + '/reset-calls', { method: 'POST' });
            if (response.ok) loadUsers();
        }

        async function deleteUser(userId) {
            if (!confirm('Delete this user? This cannot be undone!')) return;
            const response = await fetch('/api/admin/users/' + userId, { method: 'DELETE' });
            if (response.ok) loadUsers();
        }

        async function logout() {
            await fetch('/api/admin/logout', { method: 'POST' });
            window.location.href = '/admin/login';
        }

        loadUsers();
    </script>
</body>
</html>`
